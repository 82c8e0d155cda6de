package task_test

import (
	"testing"

	"github.com/DSchif/zoo-maker-sub000/task"
)

func TestKindRole(t *testing.T) {
	tests := []struct {
		kind task.Kind
		want task.Role
	}{
		{task.KindFeedAnimals, task.RoleKeeper},
		{task.KindCleanWaste, task.RoleKeeper},
		{task.KindRepairFence, task.RoleMechanic},
		{task.KindClearLitter, task.RoleCaretaker},
		{task.KindEmptyBin, task.RoleCaretaker},
		{task.Kind("bogus"), task.Role("")},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Role(); got != tt.want {
				t.Errorf("Role() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []task.Kind{
		task.KindFeedAnimals, task.KindCleanWaste, task.KindRepairFence,
		task.KindClearLitter, task.KindEmptyBin,
	} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if task.Kind("mow_lawn").Valid() {
		t.Error("unknown kind should not be valid")
	}
}

func TestRoleKindsRoundTrip(t *testing.T) {
	for _, role := range []task.Role{task.RoleKeeper, task.RoleMechanic, task.RoleCaretaker} {
		t.Run(string(role), func(t *testing.T) {
			kinds := role.Kinds()
			if len(kinds) == 0 {
				t.Fatalf("role %q has no kinds", role)
			}
			for _, k := range kinds {
				if k.Role() != role {
					t.Errorf("kind %q maps to role %q, listed under %q", k, k.Role(), role)
				}
			}
		})
	}
}

func TestPayloadKinds(t *testing.T) {
	tests := []struct {
		name    string
		payload task.Payload
		want    task.Kind
	}{
		{"feed", task.FeedPayload{Food: task.FoodHay, Amount: 3}, task.KindFeedAnimals},
		{"waste", task.CleanWastePayload{}, task.KindCleanWaste},
		{"fence", task.RepairFencePayload{}, task.KindRepairFence},
		{"litter", task.ClearLitterPayload{}, task.KindClearLitter},
		{"bin", task.EmptyBinPayload{}, task.KindEmptyBin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.payload.Kind(); got != tt.want {
				t.Errorf("payload Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWorkDurationPositive(t *testing.T) {
	for _, k := range []task.Kind{
		task.KindFeedAnimals, task.KindCleanWaste, task.KindRepairFence,
		task.KindClearLitter, task.KindEmptyBin,
	} {
		if k.WorkDuration() <= 0 {
			t.Errorf("kind %q has non-positive work duration", k)
		}
	}
}

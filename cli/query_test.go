package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nathoo/questlogic/content/brotato"
)

func TestReach_Golden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"reach_crypt", []string{"reach", "--content", cryptDir, "--item", "Torch", "--item", "Sword"}},
		{"reach_crypt_empty", []string{"reach", "--content", cryptDir}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			if err != nil {
				t.Fatalf("execute failed: %v", err)
			}
			newGoldie(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestReach_JSON(t *testing.T) {
	out, _, err := execute(t, "", "reach", "--format", "json", "--content", cryptDir, "--item", "Torch:1", "--item", "Key")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	var resp struct {
		Status string      `json:"status"`
		Data   ReachReport `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	want := ReachReport{
		Game:         "Sunken Crypt",
		Player:       1,
		Regions:      []string{"Gate", "Hall", "Vault"},
		Locations:    []string{"Gate Chest", "Hall Urn"},
		TotalRegions: 4,
		TotalLocs:    4,
		Passes:       1,
		Goal:         GoalStatus{Complete: false, Have: 0, Need: 1},
	}
	if diff := cmp.Diff(want, resp.Data); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
}

func TestReach_BrotatoDefault(t *testing.T) {
	out, _, err := execute(t, "", "reach", "--format", "json")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	var resp struct {
		Data ReachReport `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	opts := brotato.DefaultOptions()
	if resp.Data.Game != brotato.Game {
		t.Errorf("game = %q, want %q", resp.Data.Game, brotato.Game)
	}
	if len(resp.Data.Locations) != resp.Data.TotalLocs {
		t.Errorf("reached %d of %d locations; the any-character world is open from the start",
			len(resp.Data.Locations), resp.Data.TotalLocs)
	}
	if !resp.Data.Goal.Complete || resp.Data.Goal.Need != opts.NumVictories {
		t.Errorf("goal = %+v, want complete with need %d", resp.Data.Goal, opts.NumVictories)
	}
}

func TestReach_BrotatoSpecificDefaultCharacters(t *testing.T) {
	out, _, err := execute(t, "", "reach", "--options", "../content/brotato/testdata/options.yaml",
		"--item", brotato.CharacterWin("Brawler"))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(out, "Goal: complete (5/5)") {
		t.Errorf("five default characters must win five distinct runs, got:\n%s", out)
	}
	if strings.Contains(out, brotato.CharacterRunLocation("Chunky")) {
		t.Error("an unlockable character's run must not be reachable without characters")
	}
	if !strings.Contains(out, brotato.CharacterRunLocation("Brawler")) {
		t.Error("a default character's run must be reachable")
	}
}

func TestMissing_Golden(t *testing.T) {
	out, _, err := execute(t, "", "missing", "--content", cryptDir,
		"--item", "Torch", "--checked", "Gate Chest", "--checked", "Nowhere")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	newGoldie(t).Assert(t, "missing_crypt", []byte(out))
}

func TestMissing_JSONCheckedUnreached(t *testing.T) {
	out, _, err := execute(t, "", "missing", "--format", "json", "--content", cryptDir, "--checked", "Vault Hoard")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	var resp struct {
		Data MissingReport `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := MissingReport{
		Game:             "Sunken Crypt",
		Player:           1,
		Missing:          []string{"Gate Chest"},
		OutOfLogic:       []string{"Hall Urn"},
		Checked:          []string{},
		CheckedUnreached: []string{"Vault Hoard"},
	}
	if diff := cmp.Diff(want, resp.Data); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
}

func TestValidate_Golden(t *testing.T) {
	tests := []struct {
		name string
		dir  string
	}{
		{"validate_crypt", cryptDir},
		{"validate_warnings", "../loader/testdata/warnings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", "validate", tt.dir)
			if err != nil {
				t.Fatalf("execute failed: %v", err)
			}
			newGoldie(t).Assert(t, tt.name, []byte(out))
		})
	}
}

func TestValidate_InvalidContent(t *testing.T) {
	out, _, err := execute(t, "", "validate", "../loader/testdata/bad_refs")
	if err == nil {
		t.Fatal("expected error for invalid content")
	}
	if code := GetExitCode(err); code != ExitFailure {
		t.Errorf("exit code = %d, want %d", code, ExitFailure)
	}
	if !strings.HasPrefix(out, "invalid: ") {
		t.Errorf("output should start with the error count, got:\n%s", out)
	}
	for _, want := range []string{`"Lockpick"`, `"Pit"`, `"Trophy"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestValidate_InvalidContentJSON(t *testing.T) {
	out, _, err := execute(t, "", "validate", "--format", "json", "../loader/testdata/bad_refs")
	if err == nil {
		t.Fatal("expected error for invalid content")
	}
	var resp struct {
		Status string         `json:"status"`
		Data   ValidateResult `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if resp.Status != "failed" || resp.Data.Valid {
		t.Errorf("status = %q valid = %v, want failed/false", resp.Status, resp.Data.Valid)
	}
	if len(resp.Data.Errors) == 0 {
		t.Error("expected errors in JSON output")
	}
}

func TestValidate_BadLuaIsCommandError(t *testing.T) {
	_, _, err := execute(t, "", "validate", "../loader/testdata/bad_lua")
	if err == nil {
		t.Fatal("expected error")
	}
	if code := GetExitCode(err); code != ExitCommandError {
		t.Errorf("exit code = %d, want %d", code, ExitCommandError)
	}
}

func TestValidate_RequiresDir(t *testing.T) {
	if _, _, err := execute(t, "", "validate"); err == nil {
		t.Fatal("expected error without a directory")
	}
}

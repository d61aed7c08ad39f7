package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	embedded := ClimbConfig{}
	if err := yaml.Unmarshal(DefaultClimbYAML(), &embedded); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(embedded, DefaultClimbConfig()) {
		t.Errorf("embedded defaults drifted from DefaultClimbConfig:\n%+v\n%+v", embedded, DefaultClimbConfig())
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultClimbConfig().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultClimbConfig()
	cfg.Physics.Gravity = 0
	cfg.Generator.Tiers = nil
	cfg.Generator.RescuePrefab = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"gravity", "tiers", "rescue_prefab"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestSafeRise(t *testing.T) {
	cfg := DefaultClimbConfig()
	// 720^2 / (2*1800) = 144, scaled by 0.85
	if got := cfg.SafeRise(); got < 122.39 || got > 122.41 {
		t.Errorf("SafeRise() = %v, expected 122.4", got)
	}
}

func TestLoadClimbCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climb.yaml")
	partial := "jump:\n  velocity: 800\nhealth:\n  hearts: 7\n"
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadClimb(path)
	if err != nil {
		t.Fatalf("LoadClimb: %v", err)
	}
	if cfg.Jump.Velocity != 800 || cfg.Health.Hearts != 7 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Jump, cfg.Health)
	}
	if cfg.Physics.Gravity != 1800 || cfg.World.MapID != "grassy" {
		t.Errorf("unset fields lost their defaults: %+v", cfg.World)
	}
}

func TestLoadClimbCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadClimb(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadClimb(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("generator:\n  safety_margin: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadClimb(invalid); err == nil || !strings.Contains(err.Error(), "safety_margin") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultClimbConfig())
	if err != nil {
		t.Fatal(err)
	}
	var back ClimbConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, DefaultClimbConfig()) {
		t.Error("marshalled tuning does not load back identically")
	}
}

func TestApplyClimbPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		level   float64
		hearts  int
		offset  float64
	}{
		{"", true, 0.0, 3, 420},
		{DifficultyEasy, true, 0.0, 5, 525},
		{DifficultyNormal, true, 0.3, 3, 420},
		{DifficultyHard, true, 0.7, 2, 336},
		{DifficultyFixed, false, 0.0, 3, 420},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultClimbConfig()
			ApplyClimbPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.level {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.level)
			}
			if cfg.Health.Hearts != tc.hearts {
				t.Errorf("Hearts = %d, expected %d", cfg.Health.Hearts, tc.hearts)
			}
			if d := cfg.Culling.DeathFloorOffset - tc.offset; d > 1e-9 || d < -1e-9 {
				t.Errorf("DeathFloorOffset = %v, expected %v", cfg.Culling.DeathFloorOffset, tc.offset)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown preset should parse to empty")
	}
	if !IsFixedPreset(ParsePreset("fixed")) {
		t.Error("fixed should be fixed")
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DefaultClimbConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level at start = %v, expected 0", got)
	}
	if got := dm.Level(8000, 0); got != 0.5 {
		t.Errorf("Level halfway = %v, expected 0.5", got)
	}
	if got := dm.Level(1e9, 0); got != 1 {
		t.Errorf("Level past max = %v, expected 1", got)
	}

	cfg.InitialLevel = 0.5
	if got := NewDifficultyManager(cfg).Level(8000, 0); got != 0.75 {
		t.Errorf("Level with initial 0.5 = %v, expected 0.75", got)
	}

	cfg.Enabled = false
	if got := NewDifficultyManager(cfg).Level(1e9, 0); got != 0.5 {
		t.Errorf("disabled Level = %v, expected initial 0.5", got)
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
	})
	if got := dm.Level(1e9, 25); got != 0.25 {
		t.Errorf("Level = %v, expected 0.25", got)
	}
}

func TestTierWeightsShiftTowardHard(t *testing.T) {
	dm := NewDifficultyManager(DefaultClimbConfig().Difficulty)
	base := []float64{5, 3, 2}

	start := dm.TierWeights(base, 0, 0)
	if !reflect.DeepEqual(start, base) {
		t.Errorf("weights at level 0 = %v, expected %v", start, base)
	}

	late := dm.TierWeights(base, 16000, 0)
	if late[0] >= base[0] || late[2] <= base[2] {
		t.Errorf("late weights %v should favour the hard tier", late)
	}
	if sum := late[0] + late[1] + late[2]; sum != 10 {
		t.Errorf("weights should keep their total, got %v", sum)
	}
	if base[0] != 5 {
		t.Error("TierWeights must not modify its input")
	}
}

func TestPrefabWeightRescueUnscaled(t *testing.T) {
	dm := NewDifficultyManager(DefaultClimbConfig().Difficulty)
	if got := dm.PrefabWeight(6, true, 16000, 0); got != 6 {
		t.Errorf("rescue weight = %v, expected 6", got)
	}
	if got := dm.PrefabWeight(1, false, 16000, 0); got != 2 {
		t.Errorf("narrow weight at max = %v, expected 2", got)
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "climb.yaml")
	if err := os.WriteFile(path, []byte("health:\n  hearts: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("health:\n  hearts: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		want, _ := filepath.Abs(path)
		if got != want {
			t.Errorf("event path = %q, expected %q", got, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change event received")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "climb.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		t.Errorf("unexpected event for %q", got)
	case <-time.After(300 * time.Millisecond):
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed after Close")
	}
}

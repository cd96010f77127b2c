package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultLevel is the level file shipped with the game.
const DefaultLevel = "level.yaml"

// PodCount mirrors the fixed number of pods and characters in a level.
const PodCount = 3

var ErrInvalidSpec = errors.New("prefabs: invalid level spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RangeSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// RectSpec is an axis-aligned box. Pod geometry uses X/Y as the bottom-left
// corner in pod-local units; room props use X/Y as the center.
type RectSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type TuningSpec struct {
	WalkSpeed        float64  `yaml:"walk_speed"`
	CharacterSize    Vec2Spec `yaml:"character_size"`
	InteractDistance float64  `yaml:"interact_distance"`
	InteractCooldown float64  `yaml:"interact_cooldown"`
	StartingLives    int      `yaml:"starting_lives"`
	PodHealth        int      `yaml:"pod_health"`
	HazardCooldown   float64  `yaml:"hazard_cooldown"`
	StepSize         float64  `yaml:"step_size"`
	StepInterval     float64  `yaml:"step_interval"`
	PodPlayerSize    float64  `yaml:"pod_player_size"`
	DialogueSeconds  float64  `yaml:"dialogue_seconds"`
}

type CameraSpec struct {
	Start          Vec2Spec  `yaml:"start"`
	Offset         Vec2Spec  `yaml:"offset"`
	FollowSpeed    float64   `yaml:"follow_speed"`
	OrthoSize      float64   `yaml:"ortho_size"`
	IntroPoint     *Vec2Spec `yaml:"intro_point"`
	IntroThreshold float64   `yaml:"intro_threshold"`
	Overview       Vec2Spec  `yaml:"overview"`
	OverviewSize   float64   `yaml:"overview_size"`
	ZoomSpeed      float64   `yaml:"zoom_speed"`
	WinPoint       Vec2Spec  `yaml:"win_point"`
	LoseSize       float64   `yaml:"lose_size"`
}

type SequenceSpec struct {
	EntryFreeze           float64 `yaml:"entry_freeze"`
	GameOverDelay         float64 `yaml:"game_over_delay"`
	WinCheerDelay         float64 `yaml:"win_cheer_delay"`
	WinMusicDelay         float64 `yaml:"win_music_delay"`
	ElevatorSoundDuration float64 `yaml:"elevator_sound_duration"`
}

type MusicSpec struct {
	Standard string   `yaml:"standard"`
	Monitor  []string `yaml:"monitor"`
	Win      string   `yaml:"win"`
	Lose     string   `yaml:"lose"`
	Fade     float64  `yaml:"fade"`
}

type CharacterSpec struct {
	Name        string    `yaml:"name"`
	Role        string    `yaml:"role"`
	Start       Vec2Spec  `yaml:"start"`
	Bounds      RangeSpec `yaml:"bounds"`
	CameraClamp RangeSpec `yaml:"camera_clamp"`
	Computer    RectSpec  `yaml:"computer"`
	Bed         RectSpec  `yaml:"bed"`
	Door        RectSpec  `yaml:"door"`
	Exit        RectSpec  `yaml:"exit"`
}

type PodSpec struct {
	Origin  Vec2Spec   `yaml:"origin"`
	Width   float64    `yaml:"width"`
	Height  float64    `yaml:"height"`
	Start   Vec2Spec   `yaml:"start"`
	Goal    RectSpec   `yaml:"goal"`
	Hazards []RectSpec `yaml:"hazards"`
}

// LevelSpec is the whole static configuration of a level.
type LevelSpec struct {
	Name           string          `yaml:"name"`
	ReactionScript string          `yaml:"reaction_script"`
	Tuning         TuningSpec      `yaml:"tuning"`
	Camera         CameraSpec      `yaml:"camera"`
	Sequences      SequenceSpec    `yaml:"sequences"`
	Music          MusicSpec       `yaml:"music"`
	Characters     []CharacterSpec `yaml:"characters"`
	Pods           []PodSpec       `yaml:"pods"`
}

// LoadLevelSpec loads, defaults and validates a level file.
func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

func (s *LevelSpec) applyDefaults() {
	t := &s.Tuning
	if t.StartingLives == 0 {
		t.StartingLives = 3
	}
	if t.PodHealth == 0 {
		t.PodHealth = 3
	}
	if t.InteractCooldown == 0 {
		t.InteractCooldown = 4
	}
	if t.HazardCooldown == 0 {
		t.HazardCooldown = 1
	}
	if t.DialogueSeconds == 0 {
		t.DialogueSeconds = 3
	}
	if s.Camera.FollowSpeed == 0 {
		s.Camera.FollowSpeed = 0.15
	}
	if s.Camera.LoseSize == 0 {
		s.Camera.LoseSize = 2
	}
	if s.Music.Fade == 0 {
		s.Music.Fade = 0.1
	}
	q := &s.Sequences
	if q.WinCheerDelay == 0 {
		q.WinCheerDelay = 3.5
	}
	if q.WinMusicDelay == 0 {
		q.WinMusicDelay = 3.5
	}
	if s.ReactionScript == "" {
		s.ReactionScript = "interactions.tengo"
	}
}

// Validate checks the invariants the level builder relies on.
func (s *LevelSpec) Validate() error {
	if len(s.Characters) != PodCount {
		return fmt.Errorf("%w: want %d characters, got %d", ErrInvalidSpec, PodCount, len(s.Characters))
	}
	if len(s.Pods) != PodCount {
		return fmt.Errorf("%w: want %d pods, got %d", ErrInvalidSpec, PodCount, len(s.Pods))
	}
	if len(s.Music.Monitor) != PodCount {
		return fmt.Errorf("%w: want %d monitor tracks, got %d", ErrInvalidSpec, PodCount, len(s.Music.Monitor))
	}

	t := s.Tuning
	switch {
	case t.WalkSpeed <= 0:
		return fmt.Errorf("%w: walk_speed must be positive", ErrInvalidSpec)
	case t.StepSize <= 0 || t.StepInterval <= 0:
		return fmt.Errorf("%w: step_size and step_interval must be positive", ErrInvalidSpec)
	case t.PodPlayerSize <= 0 || t.PodPlayerSize > t.StepSize*2:
		return fmt.Errorf("%w: pod_player_size must be in (0, 2*step_size]", ErrInvalidSpec)
	case t.InteractDistance <= 0:
		return fmt.Errorf("%w: interact_distance must be positive", ErrInvalidSpec)
	case t.StartingLives < 1 || t.PodHealth < 1:
		return fmt.Errorf("%w: starting_lives and pod_health must be at least 1", ErrInvalidSpec)
	case t.CharacterSize.X <= 0 || t.CharacterSize.Y <= 0:
		return fmt.Errorf("%w: character_size must be positive", ErrInvalidSpec)
	}

	seen := map[string]bool{}
	for i, c := range s.Characters {
		if _, err := ParseRole(c.Role); err != nil {
			return fmt.Errorf("%w: character %d: %v", ErrInvalidSpec, i, err)
		}
		if seen[c.Role] {
			return fmt.Errorf("%w: character %d: duplicate role %q", ErrInvalidSpec, i, c.Role)
		}
		seen[c.Role] = true
		if c.Bounds.Min > c.Bounds.Max || c.CameraClamp.Min > c.CameraClamp.Max {
			return fmt.Errorf("%w: character %d: inverted range", ErrInvalidSpec, i)
		}
		if c.Start.X < c.Bounds.Min || c.Start.X > c.Bounds.Max {
			return fmt.Errorf("%w: character %d: start outside bounds", ErrInvalidSpec, i)
		}
	}

	for i, p := range s.Pods {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: pod %d: size must be positive", ErrInvalidSpec, i)
		}
		if p.Goal.W <= 0 || p.Goal.H <= 0 {
			return fmt.Errorf("%w: pod %d: goal must have an area", ErrInvalidSpec, i)
		}
		half := t.PodPlayerSize / 2
		for j, h := range p.Hazards {
			if p.Start.X+half > h.X && p.Start.X-half < h.X+h.W && p.Start.Y+half > h.Y && p.Start.Y-half < h.Y+h.H {
				return fmt.Errorf("%w: pod %d: start overlaps hazard %d", ErrInvalidSpec, i, j)
			}
		}
	}
	return nil
}

// ParseRole maps a role name to the character index that owns that room.
func ParseRole(role string) (int, error) {
	switch role {
	case "left":
		return 0, nil
	case "center":
		return 1, nil
	case "right":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown role %q", role)
	}
}

package macro

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dshills/modal/internal/input/key"
	"github.com/dshills/modal/internal/register"
)

const currentVersion = 1

// Entry is one persisted macro. Keys are stored in key notation.
type Entry struct {
	Register string `yaml:"register"`
	Keys     string `yaml:"keys"`
}

// Snapshot is the on-disk form of the recorded macros.
type Snapshot struct {
	ID         uuid.UUID `yaml:"id"`
	Version    int       `yaml:"version"`
	SavedAt    time.Time `yaml:"saved_at"`
	LastPlayed string    `yaml:"last_played,omitempty"`
	Macros     []Entry   `yaml:"macros"`
}

// Capture collects every register holding recorded keys.
func Capture(regs *register.Store, player *Player, now time.Time) Snapshot {
	snap := Snapshot{ID: uuid.New(), Version: currentVersion, SavedAt: now}
	if last, ok := player.Last().Get(); ok {
		snap.LastPlayed = string(last)
	}
	for _, name := range regs.Names() {
		if !CanRecordTo(name) || name == '"' {
			continue
		}
		c := regs.GetChar(name).MustGet()
		if len(c.Keys) == 0 {
			continue
		}
		snap.Macros = append(snap.Macros, Entry{Register: string(name), Keys: c.Keys.String()})
	}
	return snap
}

// Apply stores the snapshot's macros in regs. Entries naming invalid
// registers are skipped; bad key notation is an error.
func (s Snapshot) Apply(regs *register.Store, player *Player) error {
	for _, m := range s.Macros {
		name := []rune(m.Register)
		if len(name) != 1 || !CanRecordTo(name[0]) {
			continue
		}
		seq, err := key.ParseSequence(m.Keys)
		if err != nil {
			return fmt.Errorf("macro %s: %w", m.Register, err)
		}
		reg := register.FromChar(name[0]).MustGet()
		reg.Append = false
		if err := regs.Put(reg, register.Macro(seq)); err != nil {
			return fmt.Errorf("macro %s: %w", m.Register, err)
		}
	}
	if last := []rune(s.LastPlayed); len(last) == 1 && CanRecordTo(last[0]) {
		player.SetLast(last[0])
	}
	return nil
}

// Save writes the snapshot to path atomically.
func Save(path string, snap Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal macros: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a snapshot from path. A missing file yields an empty
// snapshot.
func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{Version: currentVersion}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read macros file: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal macros: %w", err)
	}
	if snap.Version > currentVersion {
		return Snapshot{}, fmt.Errorf("unsupported macros file version %d (max %d)", snap.Version, currentVersion)
	}
	return snap, nil
}

// DefaultPath returns the default macro file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config directory: %w", err)
	}
	return filepath.Join(dir, "modal", "macros.yaml"), nil
}

package scripting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/charplanner/internal/game/character"
	"github.com/cory-johannsen/charplanner/internal/game/ruleset"
)

// bonusHook is the Lua global function a provider script must define.
const bonusHook = "bonuses"

// BonusProvider is a recalc.BonusSource backed by a sandboxed Lua VM.
// Provider scripts define a global `bonuses(ch)` function that receives a
// character table (name, level, breed, profession) and returns a table of
// stat contributions keyed by stat id or stat name.
//
// A provider serializes calls into its VM; one provider may be shared by
// recalculations of different characters.
type BonusProvider struct {
	mu     sync.Mutex
	name   string
	state  *lua.LState
	cancel context.CancelFunc
	limit  int
	logger *zap.Logger
	// statIDs resolves lowercase stat names in script output to stat ids.
	statIDs map[string]int
}

// NewBonusProvider creates a provider, loading every *.lua file in
// scriptDir into one sandboxed VM in lexicographic order.
//
// Precondition: tables and logger must be non-nil; scriptDir must be a
// readable directory.
// Postcondition: Returns a provider whose VM has executed all scripts, or
// a non-nil error. The caller must Close the provider when done.
func NewBonusProvider(name string, tables ruleset.Tables, logger *zap.Logger, scriptDir string, instLimit int) (*BonusProvider, error) {
	L, cancel := NewSandboxedState(instLimit)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		cancel()
		L.Close()
		return nil, fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, name, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)
	for _, path := range luaFiles {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return nil, fmt.Errorf("scripting: loading %q for %q: %w", path, name, err)
		}
	}

	statIDs := make(map[string]int)
	for i := 0; i < character.NumAbilities; i++ {
		statIDs[strings.ToLower(character.AbilityName(i))] = character.AbilityStatID(i)
	}
	for _, s := range tables.Skills() {
		statIDs[strings.ToLower(s.Name)] = s.ID
	}
	statIDs["max health"] = character.StatMaxHealth
	statIDs["max nano energy"] = character.StatMaxNanoEnergy

	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	return &BonusProvider{
		name:    name,
		state:   L,
		cancel:  cancel,
		limit:   instLimit,
		logger:  logger,
		statIDs: statIDs,
	}, nil
}

// Name implements recalc.BonusSource.
func (p *BonusProvider) Name() string { return p.name }

// Bonuses implements recalc.BonusSource by calling the script's bonuses
// hook. A missing hook contributes nothing; Lua runtime errors are
// returned to the caller, which degrades them to an empty contribution.
func (p *BonusProvider) Bonuses(_ context.Context, snap *character.Snapshot) (map[int]int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	L := p.state
	fn := L.GetGlobal(bonusHook)
	if fn == lua.LNil {
		return nil, nil
	}

	// Fresh opcode budget per call; the load-time context would otherwise
	// run out after enough recalculations.
	ctx, cancel := newCountingContext(p.limit)
	L.SetContext(ctx)
	p.cancel()
	p.cancel = cancel

	ch := L.NewTable()
	L.SetField(ch, "name", lua.LString(snap.Name))
	L.SetField(ch, "level", lua.LNumber(snap.Level))
	L.SetField(ch, "breed", lua.LNumber(snap.Breed))
	L.SetField(ch, "profession", lua.LNumber(snap.Profession))

	if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, ch); err != nil {
		return nil, fmt.Errorf("scripting: %s hook for %q: %w", bonusHook, p.name, err)
	}
	ret := L.Get(-1)
	L.Pop(1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		if ret == lua.LNil {
			return nil, nil
		}
		return nil, fmt.Errorf("scripting: %s hook for %q returned %s, want table", bonusHook, p.name, ret.Type())
	}

	out := make(map[int]int)
	tbl.ForEach(func(key, value lua.LValue) {
		amount, ok := value.(lua.LNumber)
		if !ok {
			p.logger.Warn("scripting: non-numeric bonus value skipped",
				zap.String("provider", p.name),
				zap.String("key", key.String()),
			)
			return
		}
		switch k := key.(type) {
		case lua.LNumber:
			out[int(k)] += int(amount)
		case lua.LString:
			id, ok := p.statIDs[strings.ToLower(string(k))]
			if !ok {
				p.logger.Warn("scripting: unknown stat name skipped",
					zap.String("provider", p.name),
					zap.String("stat", string(k)),
				)
				return
			}
			out[id] += int(amount)
		default:
			p.logger.Warn("scripting: unsupported bonus key skipped",
				zap.String("provider", p.name),
				zap.String("key", key.String()),
			)
		}
	})
	return out, nil
}

// Close releases the provider's Lua VM.
func (p *BonusProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancel()
	p.state.Close()
}

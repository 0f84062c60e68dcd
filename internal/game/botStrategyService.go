package game

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

var ErrInvalidScript = errors.New("invalid lua strategy")

const luaEntryPoint = "choosePlacement"

// builtinLuaStrategies ship with the binary so demo mode works without a
// strategy directory.
var builtinLuaStrategies = map[string]string{
	"lowest-column": `
		-- drop the piece unrotated over the lowest column
		function choosePlacement(board, piece)
			local bestX, bestHeight = 0, board.height + 1
			for x = 1, board.width do
				local height = 0
				for y = 1, board.height do
					if board.rows[y][x] ~= 0 then
						height = board.height - y + 1
						break
					end
				end
				if height < bestHeight then
					bestX, bestHeight = x - 1, height
				end
			end
			return {Rotation = piece.rotation, X = bestX - 1}
		end
	`,
}

// LuaStrategy asks a Lua script where to put each piece. The script defines
//
//	function choosePlacement(board, piece) return {Rotation = r, X = x} end
//
// board has width, height and rows (1-based, rows[y][x], 0 for empty); piece
// has shape, rotation, x and y. Returned coordinates are 0-based like the
// grid's.
type LuaStrategy struct {
	name  string
	state *lua.LState
}

// NewLuaStrategy compiles source and checks it defines choosePlacement.
func NewLuaStrategy(name, source string) (*LuaStrategy, error) {
	luaState := lua.NewState()
	if err := luaState.DoString(source); err != nil {
		luaState.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidScript, name, err)
	}

	if luaState.GetGlobal(luaEntryPoint).Type() != lua.LTFunction {
		luaState.Close()
		return nil, fmt.Errorf("%w %s: %s is not defined", ErrInvalidScript, name, luaEntryPoint)
	}

	return &LuaStrategy{name: name, state: luaState}, nil
}

// BuiltinLuaStrategy returns one of the strategies bundled with the binary.
func BuiltinLuaStrategy(name string) (*LuaStrategy, error) {
	source, ok := builtinLuaStrategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStrategyNotFound, name)
	}
	return NewLuaStrategy(name, source)
}

// LoadLuaStrategies compiles every *.lua file in dir, keyed by file name
// without extension.
func LoadLuaStrategies(dir string) (map[string]*LuaStrategy, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return nil, fmt.Errorf("failed to list lua strategies in %s: %w", dir, err)
	}
	sort.Strings(paths)

	strategies := make(map[string]*LuaStrategy, len(paths))
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			closeAll(strategies)
			return nil, fmt.Errorf("failed to read lua strategy %s: %w", path, err)
		}

		name := strings.TrimSuffix(filepath.Base(path), ".lua")
		strategy, err := NewLuaStrategy(name, string(source))
		if err != nil {
			closeAll(strategies)
			return nil, err
		}
		strategies[name] = strategy
	}

	return strategies, nil
}

func closeAll(strategies map[string]*LuaStrategy) {
	for _, strategy := range strategies {
		strategy.Close()
	}
}

func (s *LuaStrategy) Name() string { return s.name }

func (s *LuaStrategy) Close() {
	s.state.Close()
}

func (s *LuaStrategy) NextPlacement(grid *Grid, piece Piece) (Placement, error) {
	ctx, cancel := context.WithTimeout(context.Background(), MaxStrategyCalculationTime)
	defer cancel()
	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	err := s.state.CallByParam(lua.P{
		Fn:      s.state.GetGlobal(luaEntryPoint),
		NRet:    1,
		Protect: true,
	}, s.boardTable(grid), s.pieceTable(piece))
	if err != nil {
		return Placement{}, fmt.Errorf("lua strategy %s failed: %w", s.name, err)
	}

	luaReturn := s.state.Get(-1)
	s.state.Pop(1)

	luaTable, ok := luaReturn.(*lua.LTable)
	if !ok {
		return Placement{}, fmt.Errorf("%w %s: returned %s, expected table", ErrInvalidScript, s.name, luaReturn.Type())
	}

	return convertLuaPlacementTableToGoStruct(luaTable, piece), nil
}

func (s *LuaStrategy) boardTable(grid *Grid) *lua.LTable {
	board := s.state.NewTable()
	board.RawSetString("width", lua.LNumber(grid.Width()))
	board.RawSetString("height", lua.LNumber(grid.Height()))

	rows := s.state.NewTable()
	for y := 0; y < grid.Height(); y++ {
		row := s.state.NewTable()
		for x := 0; x < grid.Width(); x++ {
			row.RawSetInt(x+1, lua.LNumber(grid.Cell(x, y)))
		}
		rows.RawSetInt(y+1, row)
	}
	board.RawSetString("rows", rows)
	return board
}

func (s *LuaStrategy) pieceTable(piece Piece) *lua.LTable {
	table := s.state.NewTable()
	table.RawSetString("shape", lua.LString(piece.Shape().String()))
	table.RawSetString("rotation", lua.LNumber(piece.Rotation()))
	table.RawSetString("x", lua.LNumber(piece.Position().X))
	table.RawSetString("y", lua.LNumber(piece.Position().Y))
	return table
}

// Missing keys keep the piece's current rotation or column.
func convertLuaPlacementTableToGoStruct(luaTbl *lua.LTable, piece Piece) Placement {
	result := Placement{Rotation: piece.Rotation(), X: piece.Position().X}
	luaTbl.ForEach(func(key, value lua.LValue) {
		if key.Type() != lua.LTString || value.Type() != lua.LTNumber {
			return
		}

		switch lua.LVAsString(key) {
		case "Rotation":
			result.Rotation = normalizeRotation(int(lua.LVAsNumber(value)))
		case "X":
			result.X = int(lua.LVAsNumber(value))
		}
	})
	return result
}

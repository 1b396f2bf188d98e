package service

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	e = entity.Empty
	x = entity.Player1
	o = entity.Player2
)

func newTestBot(level int, opts ...BotOption) *Bot {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]BotOption{WithRand(rand.New(rand.NewSource(42)))}, opts...) //nolint: gosec // it's ok

	return NewBot(logger, level, entity.Player2, opts...)
}

func boardOf(t *testing.T, grid [entity.Rows][entity.Cols]entity.Mark) entity.Board {
	t.Helper()

	board, err := entity.NewBoardFromGrid(grid)
	require.NoError(t, err)

	return board
}

func TestBot_Minimax(t *testing.T) {
	bot := newTestBot(1)

	t.Run("Terminal boards score without a move", func(t *testing.T) {
		// Given: boards that are already decided
		won := boardOf(t, [3][3]entity.Mark{{x, x, x}, {o, o, e}, {e, e, e}})
		lost := boardOf(t, [3][3]entity.Mark{{o, x, x}, {x, o, e}, {e, e, o}})
		drawn := boardOf(t, [3][3]entity.Mark{{x, o, x}, {x, o, o}, {o, x, x}})

		// When / Then: the base cases score +1, -1 and 0
		score, _, ok := bot.Minimax(won, false)
		assert.Equal(t, 1, score)
		assert.False(t, ok)

		score, _, ok = bot.Minimax(lost, true)
		assert.Equal(t, -1, score)
		assert.False(t, ok)

		score, _, ok = bot.Minimax(drawn, false)
		assert.Equal(t, 0, score)
		assert.False(t, ok)
	})

	t.Run("Empty board is a draw and ties keep the first cell", func(t *testing.T) {
		// Given: an empty board
		board := entity.NewBoard()

		// When: searching from either side
		minScore, minMove, minOK := bot.Minimax(board, false)
		maxScore, maxMove, maxOK := bot.Minimax(board, true)

		// Then: perfect play is a draw and the first cell in row-major order wins the tie
		require.True(t, minOK)
		require.True(t, maxOK)
		assert.Equal(t, 0, minScore)
		assert.Equal(t, 0, maxScore)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, minMove)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, maxMove)
	})

	t.Run("Two open diagonals for Player1 cannot be held", func(t *testing.T) {
		// Given: Player1 threatens both diagonals through the center
		board := boardOf(t, [3][3]entity.Mark{{x, o, x}, {o, x, o}, {e, e, e}})

		// When: searching from either side
		minScore, minMove, _ := bot.Minimax(board, false)
		maxScore, maxMove, _ := bot.Minimax(board, true)

		// Then: Player1 wins whatever the minimizer does
		assert.Equal(t, 1, minScore)
		assert.Equal(t, entity.Move{Row: 2, Col: 0}, minMove)
		assert.Equal(t, 1, maxScore)
		assert.Equal(t, entity.Move{Row: 2, Col: 0}, maxMove)
	})

	t.Run("Forced draw keeps the first drawing move", func(t *testing.T) {
		// Given: a board where both remaining cells lead to a draw
		board := boardOf(t, [3][3]entity.Mark{{x, o, x}, {x, o, e}, {o, x, e}})

		// When: the minimizer searches
		score, move, ok := bot.Minimax(board, false)

		// Then: the result is a draw at the first empty cell
		require.True(t, ok)
		assert.Equal(t, 0, score)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, move)
	})

	t.Run("Minimizer takes an immediate win", func(t *testing.T) {
		// Given: Player2 completes row 2 with the last empty cell
		board := boardOf(t, [3][3]entity.Mark{{x, e, x}, {e, x, e}, {o, o, e}})

		// When: the minimizer searches
		score, move, _ := bot.Minimax(board, false)

		// Then: it wins right away
		assert.Equal(t, -1, score)
		assert.Equal(t, entity.Move{Row: 2, Col: 2}, move)
	})

	t.Run("Minimizer blocks a threat", func(t *testing.T) {
		// Given: Player1 threatens row 2
		board := boardOf(t, [3][3]entity.Mark{{e, e, e}, {e, o, e}, {x, x, e}})

		// When: the minimizer searches
		score, move, _ := bot.Minimax(board, false)

		// Then: it blocks and does not lose
		assert.Equal(t, entity.Move{Row: 2, Col: 2}, move)
		assert.LessOrEqual(t, score, 0)
	})

	t.Run("Search does not touch the caller's board", func(t *testing.T) {
		// Given: a board
		board := boardOf(t, [3][3]entity.Mark{{x, e, e}, {e, e, e}, {e, e, e}})
		before := board

		// When: searching
		_, _, _ = bot.Minimax(board, false)

		// Then: the board is unchanged
		assert.Equal(t, before, board)
	})
}

func TestBot_ChooseMove(t *testing.T) {
	t.Run("Single empty cell is always chosen", func(t *testing.T) {
		// Given: boards with one empty cell and no winner
		boards := []entity.Board{
			boardOf(t, [3][3]entity.Mark{{x, o, x}, {x, o, o}, {o, x, e}}),
			boardOf(t, [3][3]entity.Mark{{e, o, x}, {x, o, o}, {o, x, x}}),
			boardOf(t, [3][3]entity.Mark{{x, o, x}, {o, e, x}, {o, x, o}}),
		}
		expected := []entity.Move{{Row: 2, Col: 2}, {Row: 0, Col: 0}, {Row: 1, Col: 1}}

		for level := 1; level <= 2; level++ {
			bot := newTestBot(level)
			for i, board := range boards {
				// When: the bot chooses
				move, err := bot.ChooseMove(board)

				// Then: it takes the only free cell
				require.NoError(t, err)
				assert.Equal(t, expected[i], move)
			}
		}
	})

	t.Run("Terminal board is refused", func(t *testing.T) {
		// Given: a won board and a full board
		won := boardOf(t, [3][3]entity.Mark{{x, x, x}, {o, o, e}, {e, e, e}})
		full := boardOf(t, [3][3]entity.Mark{{x, o, x}, {x, o, o}, {o, x, x}})

		for _, level := range []int{LevelRandom, 1} {
			bot := newTestBot(level)

			// When / Then: both are reported as misuse
			_, err := bot.ChooseMove(won)
			require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)

			_, err = bot.ChooseMove(full)
			require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
		}
	})

	t.Run("Random level spreads evenly over empty cells", func(t *testing.T) {
		// Given: a board with four empty cells
		board := boardOf(t, [3][3]entity.Mark{{x, e, o}, {e, x, o}, {e, x, e}})
		free := board.EmptyCells()
		bot := newTestBot(LevelRandom)

		// When: the bot chooses many times
		const trials = 8000
		counts := make(map[entity.Move]int)
		for range trials {
			move, err := bot.ChooseMove(board)
			require.NoError(t, err)
			counts[move]++
		}

		// Then: only empty cells are picked, each about a quarter of the time
		require.Len(t, counts, len(free))
		expected := trials / len(free)
		for _, cell := range free {
			assert.True(t, board.IsEmptyCell(cell.Row, cell.Col))
			assert.InDelta(t, expected, counts[cell], float64(expected)*0.15, "cell %s", cell)
		}
	})

	t.Run("Parallel search agrees with the sequential one", func(t *testing.T) {
		sequential := newTestBot(1)
		parallel := newTestBot(1, WithParallelSearch(true))

		boards := []entity.Board{
			boardOf(t, [3][3]entity.Mark{{x, e, e}, {e, e, e}, {e, e, e}}),
			boardOf(t, [3][3]entity.Mark{{e, e, e}, {e, o, e}, {x, x, e}}),
			boardOf(t, [3][3]entity.Mark{{x, o, x}, {x, o, e}, {o, x, e}}),
			boardOf(t, [3][3]entity.Mark{{e, e, e}, {e, x, e}, {e, e, e}}),
		}

		for _, board := range boards {
			want, err := sequential.ChooseMove(board)
			require.NoError(t, err)

			got, err := parallel.ChooseMove(board)
			require.NoError(t, err)

			assert.Equal(t, want, got)
		}
	})

	t.Run("Minimax bot never loses to a random player", func(t *testing.T) {
		bot := newTestBot(1)
		opponent := rand.New(rand.NewSource(7)) //nolint: gosec // it's ok

		for game := 0; game < 30; game++ {
			// Given: a fresh game where a random Player1 moves first
			board := entity.NewBoard()
			player := entity.Player1

			// When: the game is played out
			for board.TerminalState() == entity.NoWinner && !board.IsFull() {
				var move entity.Move
				if player == entity.Player1 {
					free := board.EmptyCells()
					move = free[opponent.Intn(len(free))]
				} else {
					var err error
					move, err = bot.ChooseMove(board)
					require.NoError(t, err)
				}

				require.True(t, board.IsEmptyCell(move.Row, move.Col))
				board.MarkCell(move.Row, move.Col, player)
				player = player.Next()
			}

			// Then: Player1 never completes a line
			assert.NotEqual(t, entity.Player1Wins, board.TerminalState(), "game %d", game)
		}
	})
}

func TestBot_Level(t *testing.T) {
	bot := newTestBot(LevelRandom)
	assert.Equal(t, LevelRandom, bot.Level())
	assert.Equal(t, entity.Player2, bot.Player())

	bot.SetLevel(1)
	assert.Equal(t, 1, bot.Level())
}

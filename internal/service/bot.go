package service

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

// LevelRandom picks a uniformly random empty cell; any higher level runs the full minimax search.
const LevelRandom = 0

const (
	scorePlayer1Wins = 1
	scorePlayer2Wins = -1
	scoreDraw        = 0

	worstForMax = -100
	worstForMin = 100
)

type BotOption func(bot *Bot)

// WithRand - sets the random source used by the random level.
func WithRand(rnd *rand.Rand) BotOption {
	return func(bot *Bot) {
		bot.rnd = rnd
	}
}

// WithSeed - makes the random level reproducible. Every bot gets its own source.
func WithSeed(seed int64) BotOption {
	return func(bot *Bot) {
		bot.rnd = rand.New(rand.NewSource(seed)) //nolint: gosec // it's ok
	}
}

// WithParallelSearch - evaluates the top-level branches concurrently.
func WithParallelSearch(enabled bool) BotOption {
	return func(bot *Bot) {
		bot.parallel = enabled
	}
}

// Bot is the computer opponent. It never keeps a reference to the caller's board:
// ChooseMove receives a copy and every branch of the search works on its own copy.
type Bot struct {
	logger *slog.Logger

	level    int
	player   entity.Mark
	parallel bool
	rnd      *rand.Rand
}

func NewBot(logger *slog.Logger, level int, player entity.Mark, opts ...BotOption) *Bot {
	bot := &Bot{
		logger: logger.With("component", "bot"),
		level:  level,
		player: player,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint: gosec // it's ok
	}

	for _, opt := range opts {
		opt(bot)
	}

	return bot
}

func (that *Bot) Level() int {
	return that.level
}

func (that *Bot) SetLevel(level int) {
	that.level = level
}

func (that *Bot) Player() entity.Mark {
	return that.player
}

// ChooseMove - picks a cell for the bot. The board must have an empty cell and no winner.
func (that *Bot) ChooseMove(board entity.Board) (entity.Move, error) {
	log := that.logger.With("method", "ChooseMove")

	if board.IsFull() || board.TerminalState() != entity.NoWinner {
		return entity.Move{}, fmt.Errorf("%w: board is already terminal", apperror.ErrNoAvailableMoves)
	}

	if that.level == LevelRandom {
		move := that.randomMove(board)
		log.Debug("bot chose move", "move", move.String(), "eval", "random")

		return move, nil
	}

	score, move, _ := that.search(board)
	log.Debug("bot chose move", "move", move.String(), "eval", score)

	return move, nil
}

func (that *Bot) randomMove(board entity.Board) entity.Move {
	emptyCells := board.EmptyCells()
	return emptyCells[that.rnd.Intn(len(emptyCells))]
}

// Minimax - scores the board from Player1's point of view: +1 Player1 wins, -1 Player2 wins, 0 draw.
// The maximizer always marks Player1, the minimizer marks the bot's own player. On equal scores
// the first cell in row-major order is kept. ok is false when the board is already terminal.
func (that *Bot) Minimax(board entity.Board, maximizing bool) (score int, move entity.Move, ok bool) {
	switch board.TerminalState() {
	case entity.Player1Wins:
		return scorePlayer1Wins, entity.Move{}, false
	case entity.Player2Wins:
		return scorePlayer2Wins, entity.Move{}, false
	case entity.NoWinner:
		if board.IsFull() {
			return scoreDraw, entity.Move{}, false
		}
	}

	best := worstForMin
	if maximizing {
		best = worstForMax
	}

	for _, cell := range board.EmptyCells() {
		next := board
		next.MarkCell(cell.Row, cell.Col, that.markFor(maximizing))

		eval, _, _ := that.Minimax(next, !maximizing)
		if that.better(eval, best, maximizing) {
			best = eval
			move = cell
			ok = true
		}
	}

	return best, move, ok
}

// search - runs the top-level minimizing call, optionally spreading its branches over goroutines.
func (that *Bot) search(board entity.Board) (int, entity.Move, bool) {
	if !that.parallel {
		return that.Minimax(board, false)
	}

	cells := board.EmptyCells()
	scores := make([]int, len(cells))

	var group errgroup.Group
	for i, cell := range cells {
		group.Go(func() error {
			next := board
			next.MarkCell(cell.Row, cell.Col, that.markFor(false))
			scores[i], _, _ = that.Minimax(next, true)

			return nil
		})
	}
	_ = group.Wait() // branches never fail

	best, move, ok := worstForMin, entity.Move{}, false
	for i, cell := range cells {
		if that.better(scores[i], best, false) {
			best, move, ok = scores[i], cell, true
		}
	}

	return best, move, ok
}

func (that *Bot) markFor(maximizing bool) entity.Mark {
	if maximizing {
		return entity.Player1
	}
	return that.player
}

func (that *Bot) better(eval, best int, maximizing bool) bool {
	if maximizing {
		return eval > best
	}
	return eval < best
}

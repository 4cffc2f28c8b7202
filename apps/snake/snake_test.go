package snake

import (
	"testing"

	"calcpad/input"
	"calcpad/shell"
)

func newTestApp() *App {
	a := New(nil, nil)
	a.Enter()
	return a
}

func TestEnterResetsGame(t *testing.T) {
	a := newTestApp()
	if !a.alive || a.paused || a.score != 0 {
		t.Fatal("enter did not produce a fresh game")
	}
	if len(a.snake) != 3 {
		t.Fatalf("snake length = %d, want 3", len(a.snake))
	}
	if a.occupied(a.food) {
		t.Fatal("food spawned on the snake")
	}
}

func TestStepMovesHead(t *testing.T) {
	a := newTestApp()
	a.food = point{x: 0, y: 0}
	head := a.snake[0]
	a.step()
	want := point{x: head.x + 1, y: head.y}
	if a.snake[0] != want {
		t.Fatalf("head = %+v, want %+v", a.snake[0], want)
	}
	if len(a.snake) != 3 {
		t.Fatalf("length changed without eating: %d", len(a.snake))
	}
}

func TestWrapAround(t *testing.T) {
	a := newTestApp()
	a.snake = []point{{x: a.gridW - 1, y: 5}}
	a.headDir = dirRight
	a.nextDir = dirRight
	a.food = point{x: 3, y: 3}
	a.step()
	if a.snake[0] != (point{x: 0, y: 5}) {
		t.Fatalf("head = %+v, want wrap to column 0", a.snake[0])
	}
}

func TestEatGrowsAndScores(t *testing.T) {
	a := newTestApp()
	head := a.snake[0]
	a.food = point{x: head.x + 1, y: head.y}
	a.step()
	if a.score != 1 {
		t.Fatalf("score = %d, want 1", a.score)
	}
	if len(a.snake) != 4 {
		t.Fatalf("length = %d, want 4 after eating", len(a.snake))
	}
	if a.food == a.snake[0] {
		t.Fatal("food not respawned")
	}
}

func TestSelfCollisionKills(t *testing.T) {
	a := newTestApp()
	// A tight loop: the head runs into its own body on the next step.
	a.snake = []point{
		{x: 5, y: 5}, {x: 5, y: 6}, {x: 4, y: 6}, {x: 4, y: 5}, {x: 4, y: 4},
	}
	a.headDir = dirRight
	a.nextDir = dirDown
	a.food = point{x: 0, y: 0}
	a.step()
	if a.alive {
		t.Fatal("driving into the body must end the game")
	}
}

func TestReverseDirectionIgnored(t *testing.T) {
	a := newTestApp()
	a.Input(input.Event{Kind: input.KindLeft})
	if a.nextDir != dirRight {
		t.Fatalf("reverse accepted: nextDir = %v", a.nextDir)
	}
	a.Input(input.Event{Kind: input.KindUp})
	if a.nextDir != dirUp {
		t.Fatalf("turn rejected: nextDir = %v", a.nextDir)
	}
}

func TestPauseAndRestart(t *testing.T) {
	a := newTestApp()
	a.Input(input.Event{Kind: input.KindSelect})
	if !a.paused {
		t.Fatal("select did not pause")
	}
	head := a.snake[0]
	a.Tick(10 * stepBaseTicks)
	if a.snake[0] != head {
		t.Fatal("snake moved while paused")
	}

	a.paused = false
	a.alive = false
	a.Input(input.Event{Kind: input.KindSelect})
	if !a.alive || a.score != 0 {
		t.Fatal("select after game over did not restart")
	}
}

func TestTickAccumulatesSteps(t *testing.T) {
	a := newTestApp()
	a.food = point{x: 0, y: 0}
	head := a.snake[0]
	a.Tick(stepBaseTicks - 1)
	if a.snake[0] != head {
		t.Fatal("stepped before the interval elapsed")
	}
	a.Tick(1)
	if a.snake[0] == head {
		t.Fatal("did not step after the interval elapsed")
	}
}

func TestSpeedRampClamped(t *testing.T) {
	a := newTestApp()
	a.score = 1000
	if got := a.stepInterval(); got != stepMinTicks {
		t.Fatalf("interval at high score = %d, want %d", got, stepMinTicks)
	}
}

func TestBackPops(t *testing.T) {
	a := newTestApp()
	if tr := a.Input(input.Event{Kind: input.KindBack}); tr != shell.Pop() {
		t.Fatal("back key must request a pop")
	}
}

package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/rule"
	"github.com/palemoky/whist/internal/game/session"
	"github.com/palemoky/whist/internal/game/strategy"
	"github.com/palemoky/whist/internal/sound"
)

type recordingSound struct {
	played []string
}

func (r *recordingSound) Play(name string) {
	r.played = append(r.played, name)
}

var testKinds = [session.NumSeats]strategy.Kind{
	strategy.KindHuman, strategy.KindSmart, strategy.KindLegal, strategy.KindRandom,
}

func c(s card.Suit, r card.Rank) card.Card {
	return card.Card{Suit: s, Rank: r}
}

func testHand() card.Hand {
	return card.Hand{c(card.Spades, card.Ace), c(card.Hearts, card.Queen), c(card.Clubs, card.Ten)}
}

func await(m *TableModel, hand card.Hand, state strategy.GameState) chan card.Card {
	reply := make(chan card.Card, 1)
	m.Update(awaitCardMsg{seat: 0, hand: hand, state: state, reply: reply})
	return reply
}

func TestNewTableModel_FaceUpSeats(t *testing.T) {
	t.Parallel()

	m := NewTableModel(testKinds, nil)
	assert.Equal(t, [session.NumSeats]bool{true, false, false, false}, m.faceUp)

	bots := [session.NumSeats]strategy.Kind{strategy.KindSmart, strategy.KindLegal, strategy.KindLegal, strategy.KindRandom}
	m = NewTableModel(bots, nil)
	assert.Equal(t, [session.NumSeats]bool{true, true, true, true}, m.faceUp)
}

func TestTableModel_PresenterMessages(t *testing.T) {
	t.Parallel()

	snd := &recordingSound{}
	m := NewTableModel(testKinds, snd)

	m.Update(statusMsg("Player 1 thinking..."))
	m.Update(trumpMsg(card.Hearts))
	m.Update(scoreMsg{seat: 2, value: 5})
	m.Update(handMsg{seat: 0, hand: testHand()})
	m.Update(handMsg{seat: 1, hand: testHand()})
	m.Update(playMsg{seat: 3, card: c(card.Diamonds, card.King)})

	assert.Equal(t, "Player 1 thinking...", m.status)
	assert.True(t, m.hasTrump)
	assert.Equal(t, card.Hearts, m.trump)
	assert.Equal(t, 5, m.scores[2])
	require.Len(t, m.trick, 1)

	view := m.View()
	assert.Contains(t, view, "Player 1 thinking...")
	assert.Contains(t, view, "HEARTS")
	assert.Contains(t, view, "P2: 5")
	assert.Contains(t, view, "A♠", "the human hand is face up")
	assert.Contains(t, view, BackIcon+" x 3", "computer hands are hidden")
	assert.Contains(t, view, "K♦")

	m.Update(clearTrickMsg{})
	assert.Empty(t, m.trick)
	assert.Equal(t, []string{sound.CardPlayed, sound.TrickWon}, snd.played)
}

func TestTableModel_SelectWithCursor(t *testing.T) {
	t.Parallel()

	m := NewTableModel(testKinds, nil)
	reply := await(m, testHand(), strategy.GameState{Trump: card.Clubs})
	require.NotNil(t, m.awaiting)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyRight}) // 已在最右
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.cursor)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.awaiting)
	select {
	case got := <-reply:
		assert.Equal(t, c(card.Hearts, card.Queen), got)
	default:
		t.Fatal("no card was sent")
	}
}

func TestTableModel_SelectByTyping(t *testing.T) {
	t.Parallel()

	m := NewTableModel(testKinds, nil)
	lead := card.Hearts
	reply := await(m, testHand(), strategy.GameState{Trump: card.Clubs, Lead: lead, HasLead: true})
	assert.Contains(t, m.View(), "首牌花色")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("10c")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	select {
	case got := <-reply:
		assert.Equal(t, c(card.Clubs, card.Ten), got)
	default:
		t.Fatal("no card was sent")
	}
}

func TestTableModel_InvalidTypedCard(t *testing.T) {
	t.Parallel()

	m := NewTableModel(testKinds, nil)
	reply := await(m, testHand(), strategy.GameState{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zz")})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.NotEmpty(t, m.error)
	assert.NotNil(t, m.awaiting, "still waiting for a card")
	assert.Empty(t, reply)
}

func TestTableModel_Reject(t *testing.T) {
	t.Parallel()

	m := NewTableModel(testKinds, nil)
	m.Update(rejectMsg{seat: 0, card: c(card.Clubs, card.Ten), reason: "you must follow HEARTS"})
	assert.Contains(t, m.View(), "you must follow HEARTS")

	// 新的选牌请求清除错误
	await(m, testHand(), strategy.GameState{})
	assert.Empty(t, m.error)
}

func TestTableModel_KeysIgnoredWhenNotWaiting(t *testing.T) {
	t.Parallel()

	m := NewTableModel(testKinds, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Nil(t, m.awaiting)
}

func TestTableModel_QuitCancelsSession(t *testing.T) {
	t.Parallel()

	m := NewTableModel(testKinds, nil)
	cancelled := false
	m.SetCancel(func() { cancelled = true })

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, cancelled)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestTableModel_GameOver(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		msg       gameOverMsg
		wantView  string
		wantSound string
	}{
		{
			name: "winner",
			msg: gameOverMsg{result: &session.Result{
				Outcome: session.OutcomeWinner,
				Winner:  1,
				Scores:  [session.NumSeats]int{3, 11, 2, 4},
			}},
			wantView:  "Game over. Winner is player: 1 (smart)",
			wantSound: sound.GameOver,
		},
		{
			name: "spoiled",
			msg: gameOverMsg{result: &session.Result{
				Outcome: session.OutcomeSpoiled,
				Winner:  -1,
				Violation: &rule.Verdict{
					Kind:   rule.Violation,
					Seat:   2,
					Reason: "Follow rule broken by player 2 attempting to play 2♣",
				},
			}},
			wantView:  "Follow rule broken by player 2",
			wantSound: sound.Spoiled,
		},
		{
			name:      "error",
			msg:       gameOverMsg{err: assert.AnError},
			wantView:  "游戏中止",
			wantSound: sound.GameOver,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			snd := &recordingSound{}
			m := NewTableModel(testKinds, snd)
			m.Update(tt.msg)

			assert.True(t, m.gameOver)
			assert.Contains(t, m.View(), tt.wantView)
			assert.Equal(t, []string{tt.wantSound}, snd.played)

			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

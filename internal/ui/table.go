package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/whist/internal/game/card"
	"github.com/palemoky/whist/internal/game/session"
	"github.com/palemoky/whist/internal/game/strategy"
	"github.com/palemoky/whist/internal/sound"
)

// SoundPlayer 播放音效，nil 表示静音
type SoundPlayer interface {
	Play(name string)
}

// TableModel 牌桌界面：显示王牌、分数、当前墩、各家手牌和状态，并处理人类玩家选牌
type TableModel struct {
	width  int
	height int

	kinds  [session.NumSeats]strategy.Kind
	faceUp [session.NumSeats]bool

	trump    card.Suit
	hasTrump bool
	scores   [session.NumSeats]int
	hands    [session.NumSeats]card.Hand
	trick    []playMsg
	status   string
	error    string

	input    textinput.Model
	awaiting *awaitCardMsg
	cursor   int

	gameOver bool
	result   *session.Result
	runErr   error

	sound  SoundPlayer
	cancel func()
}

// NewTableModel 人类座位的手牌明牌显示；没有人类玩家时全部明牌
func NewTableModel(kinds [session.NumSeats]strategy.Kind, snd SoundPlayer) *TableModel {
	input := textinput.New()
	input.Placeholder = "输入牌（如 QH、10S），或用 ←/→ 选择后回车"
	input.CharLimit = 4
	input.Width = 40

	m := &TableModel{
		kinds: kinds,
		input: input,
		sound: snd,
	}
	hasHuman := false
	for seat, k := range kinds {
		if k == strategy.KindHuman {
			m.faceUp[seat] = true
			hasHuman = true
		}
	}
	if !hasHuman {
		for seat := range m.faceUp {
			m.faceUp[seat] = true
		}
	}
	return m
}

// SetCancel 退出界面时调用，用来取消会话
func (m *TableModel) SetCancel(cancel func()) {
	m.cancel = cancel
}

func (m *TableModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		return m.handleKey(msg)
	case statusMsg:
		m.status = string(msg)
	case scoreMsg:
		m.scores[msg.seat] = msg.value
	case trumpMsg:
		m.trump = card.Suit(msg)
		m.hasTrump = true
	case handMsg:
		m.hands[msg.seat] = msg.hand
	case playMsg:
		m.trick = append(m.trick, msg)
		m.play(sound.CardPlayed)
	case clearTrickMsg:
		m.trick = nil
		m.play(sound.TrickWon)
	case awaitCardMsg:
		m.awaiting = &msg
		m.hands[msg.seat] = msg.hand
		m.cursor = 0
		m.error = ""
		m.input.Reset()
		return m, m.input.Focus()
	case rejectMsg:
		m.error = fmt.Sprintf("%s: %s", msg.card, msg.reason)
	case gameOverMsg:
		m.gameOver = true
		m.result = msg.result
		m.runErr = msg.err
		m.awaiting = nil
		m.input.Blur()
		if msg.result != nil && msg.result.Outcome == session.OutcomeSpoiled {
			m.play(sound.Spoiled)
		} else {
			m.play(sound.GameOver)
		}
	}
	return m, nil
}

func (m *TableModel) play(name string) {
	if m.sound != nil {
		m.sound.Play(name)
	}
}

func (m *TableModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, m.quit()
	}

	if m.gameOver {
		if msg.Type == tea.KeyEnter || msg.String() == "q" {
			return m, m.quit()
		}
		return m, nil
	}
	if m.awaiting == nil {
		return m, nil
	}

	hand := m.awaiting.hand
	switch msg.Type {
	case tea.KeyLeft:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyRight:
		if m.cursor < len(hand)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyEnter:
		selected, err := m.selection()
		if err != nil {
			m.error = err.Error()
			m.input.Reset()
			return m, nil
		}
		m.awaiting.reply <- selected
		m.awaiting = nil
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// selection 输入框有内容时解析输入，否则取光标处的牌
func (m *TableModel) selection() (card.Card, error) {
	if text := strings.TrimSpace(m.input.Value()); text != "" {
		return card.Parse(text)
	}
	hand := m.awaiting.hand
	if m.cursor < 0 || m.cursor >= len(hand) {
		return card.Card{}, errors.New("没有可选的牌")
	}
	return hand[m.cursor], nil
}

func (m *TableModel) quit() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	return tea.Quit
}

// Views

func (m *TableModel) View() string {
	if m.gameOver {
		return docStyle.Render(m.gameOverView())
	}

	var sb strings.Builder
	sb.WriteString(titleStyle("♠ ♥ Whist ♦ ♣"))
	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderTrump(), " ", m.renderScores()))
	sb.WriteString("\n")
	sb.WriteString(m.renderTrick())
	sb.WriteString("\n")
	for seat := range session.NumSeats {
		sb.WriteString(m.renderSeat(seat))
		sb.WriteString("\n")
	}
	sb.WriteString(m.renderPrompt())

	return docStyle.Render(sb.String())
}

func (m *TableModel) gameOverView() string {
	var msg string
	switch {
	case m.runErr != nil:
		msg = errorStyle.Render(fmt.Sprintf("游戏中止: %v", m.runErr))
	case m.result == nil:
		msg = "游戏结束"
	case m.result.Outcome == session.OutcomeSpoiled:
		msg = errorStyle.Render("A cheating player spoiled the game!")
		if m.result.Violation != nil {
			msg += "\n" + m.result.Violation.Reason
		}
	default:
		msg = fmt.Sprintf("%s Game over. Winner is player: %d (%s)", WinnerIcon, m.result.Winner, m.kinds[m.result.Winner])
	}

	var sb strings.Builder
	sb.WriteString(msg)
	sb.WriteString("\n\n")
	sb.WriteString(m.renderScores())
	sb.WriteString("\n")
	sb.WriteString(hintStyle.Render("按回车或 q 退出"))
	return sb.String()
}

func (m *TableModel) renderTrump() string {
	if !m.hasTrump {
		return boxStyle.Render("王牌: (待定)")
	}
	return boxStyle.Render(fmt.Sprintf("%s 王牌: %s %s", TrumpIcon, suitStyle(m.trump).Render(m.trump.String()), m.trump.Name()))
}

func (m *TableModel) renderScores() string {
	parts := make([]string, 0, session.NumSeats)
	for seat, score := range m.scores {
		parts = append(parts, fmt.Sprintf("P%d: %d", seat, score))
	}
	return boxStyle.Render("分数  " + strings.Join(parts, "  "))
}

func (m *TableModel) renderTrick() string {
	if len(m.trick) == 0 {
		return boxStyle.Render("(等待出牌...)")
	}
	parts := make([]string, 0, len(m.trick))
	for _, p := range m.trick {
		parts = append(parts, fmt.Sprintf("P%d %s", p.seat, renderCard(p.card, false)))
	}
	return boxStyle.Render("本墩  " + strings.Join(parts, "  "))
}

func (m *TableModel) renderSeat(seat int) string {
	label := fmt.Sprintf("Player %d (%s)", seat, m.kinds[seat])
	if m.awaiting != nil && m.awaiting.seat == seat {
		label = currentStyle.Render(label)
	}

	hand := m.hands[seat]
	if len(hand) == 0 {
		return fmt.Sprintf("%s: (无手牌)", label)
	}
	if !m.faceUp[seat] {
		return fmt.Sprintf("%s: %s x %d", label, BackIcon, len(hand))
	}

	cards := make([]string, 0, len(hand))
	for i, c := range hand {
		selected := m.awaiting != nil && m.awaiting.seat == seat && i == m.cursor
		cards = append(cards, renderCard(c, selected))
	}
	return fmt.Sprintf("%s: %s", label, strings.Join(cards, " "))
}

func (m *TableModel) renderPrompt() string {
	var sb strings.Builder
	sb.WriteString(m.status)
	if m.awaiting != nil {
		if lead, ok := m.awaiting.state.LeadSuit(); ok {
			fmt.Fprintf(&sb, "\n首牌花色: %s %s", suitStyle(lead).Render(lead.String()), lead.Name())
		}
		sb.WriteString("\n")
		sb.WriteString(m.input.View())
	} else {
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render("ESC 退出"))
	}
	if m.error != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.error))
	}
	return promptStyle.Render(sb.String())
}

func suitStyle(s card.Suit) lipgloss.Style {
	if s.IsRed() {
		return redStyle
	}
	return blackStyle
}

func renderCard(c card.Card, selected bool) string {
	style := suitStyle(c.Suit)
	if selected {
		style = cursorStyle
	}
	return style.Render(fmt.Sprintf("%-3s", c.String()))
}

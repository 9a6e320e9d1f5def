package younginvestor

import (
	"slices"
)

// Milestone names a story checkpoint the scene flow can be gated on.
type Milestone string

const (
	BankOpened  Milestone = "bankOpened"
	FirstTrade  Milestone = "firstTrade"
	SecondTrade Milestone = "secondTrade"
	ThirdTrade  Milestone = "thirdTrade"
	GuruMet     Milestone = "guruMet"
	BarMitzvah  Milestone = "barMitzvah"
	HasComputer Milestone = "hasComputer"
)

var milestones = []struct {
	name    Milestone
	reached func(*Progress) bool
}{
	{BankOpened, func(p *Progress) bool { return p.BankAccountOpened }},
	{FirstTrade, func(p *Progress) bool { return p.TradesCompleted >= 1 }},
	{SecondTrade, func(p *Progress) bool { return p.TradesCompleted >= 2 }},
	{ThirdTrade, func(p *Progress) bool { return p.TradesCompleted >= 3 }},
	{GuruMet, func(p *Progress) bool { return p.GuruMeetingComplete }},
	{BarMitzvah, func(p *Progress) bool { return p.BarMitzvahComplete }},
	{HasComputer, func(p *Progress) bool { return p.HasComputer }},
}

// Milestones lists every milestone name in story order.
func Milestones() []Milestone {
	names := make([]Milestone, len(milestones))
	for k, m := range milestones {
		names[k] = m.name
	}
	return names
}

// Progress records the player's advancement through the story.
//
// Set-like fields only grow through the Mark methods, counters only through
// their explicit increments.
type Progress struct {
	Turn                int      `json:"turn"`
	TradesCompleted     int      `json:"tradesCompleted"`
	LessonsCompleted    []int    `json:"lessonsCompleted"`
	MiniGamesCompleted  []string `json:"miniGamesCompleted"`
	BankAccountOpened   bool     `json:"bankAccountOpened"`
	BarMitzvahComplete  bool     `json:"barMitzvahComplete"`
	GuruMeetingComplete bool     `json:"guruMeetingComplete"`
	HasComputer         bool     `json:"hasComputer"`
	ComputerPrice       Money    `json:"computerPrice"`
}

// MarkLessonComplete records lesson id. Marking it again has no effect.
func (p *Progress) MarkLessonComplete(id int) {
	if !slices.Contains(p.LessonsCompleted, id) {
		p.LessonsCompleted = append(p.LessonsCompleted, id)
	}
}

// MarkMiniGameComplete records mini-game id. Marking it again has no effect.
func (p *Progress) MarkMiniGameComplete(id string) {
	if !slices.Contains(p.MiniGamesCompleted, id) {
		p.MiniGamesCompleted = append(p.MiniGamesCompleted, id)
	}
}

// LessonComplete reports whether lesson id was completed.
func (p *Progress) LessonComplete(id int) bool { return slices.Contains(p.LessonsCompleted, id) }

// MiniGameComplete reports whether mini-game id was completed.
func (p *Progress) MiniGameComplete(id string) bool {
	return slices.Contains(p.MiniGamesCompleted, id)
}

// MarkTradeRoundComplete counts one more completed trade round.
func (p *Progress) MarkTradeRoundComplete() { p.TradesCompleted++ }

// AdvanceTurn moves the turn counter forward.
func (p *Progress) AdvanceTurn() { p.Turn++ }

func (p *Progress) OpenBankAccount()     { p.BankAccountOpened = true }
func (p *Progress) CompleteBarMitzvah()  { p.BarMitzvahComplete = true }
func (p *Progress) CompleteGuruMeeting() { p.GuruMeetingComplete = true }

// SetHasComputer records whether the player owns a computer and what it cost.
func (p *Progress) SetHasComputer(has bool, price Money) {
	p.HasComputer = has
	p.ComputerPrice = price
	if !has {
		p.ComputerPrice = Money{}
	}
}

// IsMilestoneReached reports whether the named milestone is reached.
// Unknown names are never reached.
func (p Progress) IsMilestoneReached(name Milestone) bool {
	for _, m := range milestones {
		if m.name == name {
			return m.reached(&p)
		}
	}
	return false
}

// Reached returns the milestones reached so far, in story order.
func (p Progress) Reached() []Milestone {
	var reached []Milestone
	for _, m := range milestones {
		if m.reached(&p) {
			reached = append(reached, m.name)
		}
	}
	return reached
}

// Reset returns the progress to its initial state.
func (p *Progress) Reset() { *p = Progress{} }

// clone returns a copy that shares no slices with p.
func (p *Progress) clone() Progress {
	c := *p
	c.LessonsCompleted = slices.Clone(p.LessonsCompleted)
	c.MiniGamesCompleted = slices.Clone(p.MiniGamesCompleted)
	return c
}

package younginvestor

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Scene identifies a place of the story the player can be in.
type Scene string

const (
	Boot           Scene = "Boot"
	Street         Scene = "Street"
	LivingRoom     Scene = "LivingRoom"
	Bedroom        Scene = "Bedroom"
	Computer       Scene = "Computer"
	School         Scene = "School"
	Bank           Scene = "Bank"
	Library        Scene = "Library"
	TradeFloor     Scene = "Trade"
	Waiting        Scene = "Waiting"
	Hotel          Scene = "Hotel"
	HotelRoom      Scene = "HotelRoom"
	Guru           Scene = "Guru"
	BarMitzvahHall Scene = "BarMitzvah"
	ComputerShop   Scene = "ComputerShop"
	PercentsGame   Scene = "PercentsGame"
	StockQuizGame  Scene = "StockQuizGame"
	AsteroidsGame  Scene = "AsteroidsGame"
	Instructions   Scene = "Instructions"
	TradingSimGame Scene = "TradingSimGame"
	Credits        Scene = "Credits"
)

// Scenes lists every known scene.
var Scenes = []Scene{
	Boot, Street, LivingRoom, Bedroom, Computer, School, Bank, Library, TradeFloor,
	Waiting, Hotel, HotelRoom, Guru, BarMitzvahHall, ComputerShop, PercentsGame,
	StockQuizGame, AsteroidsGame, Instructions, TradingSimGame, Credits,
}

// ParseScene returns the scene named s.
func ParseScene(s string) (Scene, error) {
	if !slices.Contains(Scenes, Scene(s)) {
		return "", fmt.Errorf("unknown scene %q", s)
	}
	return Scene(s), nil
}

// Mini-game identifiers recorded in Progress.
const (
	PercentsGameID   = "percents"
	StockQuizGameID  = "stockquiz"
	AsteroidsGameID  = "asteroids"
	TradingSimGameID = "tradingSim"
)

// ParamKind tells which parameter a Step carries.
type ParamKind int

const (
	NoParam ParamKind = iota
	StreetIndex
	LessonID
	RoundParam
	Variant
	GameID
)

var paramKeys = map[ParamKind]string{
	StreetIndex: "streetIndex",
	LessonID:    "lessonId",
	RoundParam:  "round",
	Variant:     "variant",
	GameID:      "gameId",
}

// Params is the optional argument a scene is entered with. Only the field
// matching Kind is meaningful.
type Params struct {
	Kind ParamKind
	N    int    // street index, lesson id, round or variant
	Game string // for GameID
}

// MarshalJSON writes params as a single-key object, or null when empty.
func (p Params) MarshalJSON() ([]byte, error) {
	key, ok := paramKeys[p.Kind]
	if !ok {
		return []byte("null"), nil
	}
	var w jsonObjectWriter
	if p.Kind == GameID {
		w.Append(key, p.Game)
	} else {
		w.Append(key, p.N)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads the single-key object written by MarshalJSON.
func (p *Params) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Params{}
	if len(raw) == 0 {
		return nil
	}
	if len(raw) > 1 {
		return fmt.Errorf("scene params carry a single key, got %d", len(raw))
	}
	for kind, key := range paramKeys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		p.Kind = kind
		if kind == GameID {
			return json.Unmarshal(v, &p.Game)
		}
		return json.Unmarshal(v, &p.N)
	}
	return fmt.Errorf("unknown scene params %s", data)
}

func (p Params) String() string {
	switch p.Kind {
	case NoParam:
		return ""
	case GameID:
		return p.Game
	default:
		return fmt.Sprintf("%s=%d", paramKeys[p.Kind], p.N)
	}
}

// Step is one entry of the guided flow.
type Step struct {
	Scene    Scene     `json:"scene"`
	Params   Params    `json:"data"`
	Requires Milestone `json:"requires,omitempty"` // entering the step needs this milestone
}

func (s Step) String() string {
	if s.Params.Kind == NoParam {
		return string(s.Scene)
	}
	return fmt.Sprintf("%s(%s)", s.Scene, s.Params)
}

// at is a step with no parameter.
func at(scene Scene) Step { return Step{Scene: scene} }

func street(n int) Step { return Step{Scene: Street, Params: Params{Kind: StreetIndex, N: n}} }

func with(scene Scene, kind ParamKind, n int) Step {
	return Step{Scene: scene, Params: Params{Kind: kind, N: n}}
}

func (s Step) requires(m Milestone) Step { s.Requires = m; return s }

// LinearFlow is the guided order of the story.
var LinearFlow = []Step{
	street(0),
	with(LivingRoom, Variant, 1),
	street(1),
	with(School, LessonID, 1),
	street(2),
	with(Bank, Variant, 1),
	street(3).requires(BankOpened),
	with(Library, Variant, 1),
	street(4),
	with(TradeFloor, RoundParam, 1),
	with(Waiting, RoundParam, 1).requires(FirstTrade),
	street(5),
	with(School, LessonID, 2),
	at(PercentsGame),
	street(6),
	with(Library, Variant, 2),
	with(TradeFloor, RoundParam, 2),
	with(Waiting, RoundParam, 2).requires(SecondTrade),
	street(7),
	at(Hotel),
	at(HotelRoom),
	at(Guru),
	with(School, LessonID, 3).requires(GuruMet),
	at(StockQuizGame),
	street(8),
	at(BarMitzvahHall),
	at(ComputerShop).requires(BarMitzvah),
	with(TradeFloor, RoundParam, 3),
	at(AsteroidsGame).requires(ThirdTrade),
	{Scene: Instructions, Params: Params{Kind: GameID, Game: TradingSimGameID}},
	at(TradingSimGame),
	at(Credits).requires(ThirdTrade),
}

// ErrLocked is returned when moving onto a step whose milestone is not reached.
var ErrLocked = errors.New("step is locked")

// Flow walks a sequence of steps. Its zero value is not usable, see NewFlow.
type Flow struct {
	steps []Step
	index int
}

// NewFlow creates a navigator over steps, LinearFlow when none are given.
func NewFlow(steps ...Step) *Flow {
	if len(steps) == 0 {
		steps = LinearFlow
	}
	return &Flow{steps: steps}
}

// Len returns the number of steps.
func (f *Flow) Len() int { return len(f.steps) }

// Index returns the position of the current step.
func (f *Flow) Index() int { return f.index }

// SetIndex moves to index, clamped to the flow bounds.
func (f *Flow) SetIndex(index int) {
	f.index = max(0, min(index, len(f.steps)-1))
}

// Current returns the current step.
func (f *Flow) Current() Step { return f.steps[f.index] }

// Peek returns the step after the current one, if any.
func (f *Flow) Peek() (Step, bool) {
	if f.index >= len(f.steps)-1 {
		return Step{}, false
	}
	return f.steps[f.index+1], true
}

// Next moves to the following step and returns it. It returns nil at the end
// of the flow. When p has not reached the milestone the following step
// requires, the flow does not move and the error wraps ErrLocked.
func (f *Flow) Next(p *Progress) (*Step, error) {
	next, ok := f.Peek()
	if !ok {
		return nil, nil
	}
	if next.Requires != "" && !p.IsMilestoneReached(next.Requires) {
		return nil, fmt.Errorf("%w: %s requires %s", ErrLocked, next, next.Requires)
	}
	f.index++
	return &next, nil
}

// Previous moves back one step and returns it, nil at the start.
func (f *Flow) Previous() *Step {
	if f.index <= 0 {
		return nil
	}
	f.index--
	step := f.steps[f.index]
	return &step
}

// Progress returns how far the current step is through the flow, in percent.
func (f *Flow) Progress() Percent {
	if len(f.steps) < 2 {
		return 100
	}
	return Percent(float64(f.index) / float64(len(f.steps)-1) * 100)
}

// Find returns the index of the first step entering scene with params, or -1.
func (f *Flow) Find(scene Scene, params Params) int {
	return slices.IndexFunc(f.steps, func(s Step) bool {
		return s.Scene == scene && s.Params == params
	})
}

// Steps returns a copy of the navigated steps.
func (f *Flow) Steps() []Step { return slices.Clone(f.steps) }

// StreetStop is one position of the street map with the places reachable from it.
type StreetStop struct {
	Index int    `json:"streetIndex"`
	Name  Text   `json:"displayName"`
	Exits []Step `json:"next"`
}

// StreetMap is the free-roaming graph of the street. Going back from stop n
// always leads to stop n-1.
var StreetMap = []StreetStop{
	{0, Text{He: "רחוב 0 - הבית", En: "Street 0 - Home"}, []Step{with(LivingRoom, Variant, 1), street(1)}},
	{1, Text{He: "רחוב 1 - בית ספר", En: "Street 1 - School"}, []Step{with(School, LessonID, 1), street(2)}},
	{2, Text{He: "רחוב 2 - בנק", En: "Street 2 - Bank"}, []Step{with(Bank, Variant, 1), street(3)}},
	{3, Text{He: "רחוב 3 - ספרייה", En: "Street 3 - Library"}, []Step{with(Library, Variant, 1), street(4)}},
	{4, Text{He: "רחוב 4 - בורסה 1", En: "Street 4 - Exchange 1"}, []Step{with(TradeFloor, RoundParam, 1), street(5)}},
	{5, Text{He: "רחוב 5 - בית ספר 2", En: "Street 5 - School 2"}, []Step{with(School, LessonID, 2), street(6)}},
	{6, Text{He: "רחוב 6 - ספרייה + בורסה 2", En: "Street 6 - Library + Exchange 2"}, []Step{with(Library, Variant, 2), with(TradeFloor, RoundParam, 2), street(7)}},
	{7, Text{He: "רחוב 7 - מלון", En: "Street 7 - Hotel"}, []Step{at(Hotel), street(8)}},
	{8, Text{He: "רחוב 8 - בר מצווה + חנות + בורסה 3", En: "Street 8 - Bar Mitzvah + Shop + Exchange 3"}, []Step{at(BarMitzvahHall), at(ComputerShop), with(TradeFloor, RoundParam, 3)}},
}

// Back returns where going back from stop leads, false at home.
func (s StreetStop) Back() (Step, bool) {
	if s.Index == 0 {
		return Step{}, false
	}
	return street(s.Index - 1), true
}

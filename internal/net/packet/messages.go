package packet

// Inbound message types.
const (
	TypeMove    = "move"
	TypeSetName = "set_name"
	TypeBoost   = "boost"
	TypeShoot   = "shoot"
)

// Outbound message types.
const (
	TypeInit   = "init"
	TypeState  = "state"
	TypeEffect = "effect"
	TypeDead   = "dead"
)

// Effect names carried in Effect.Effect.
const (
	EffectSpeed   = "speed"
	EffectShield  = "shield"
	EffectAttract = "attract"
)

// Inbound is the union of every client message. Fields a message does not
// carry stay nil, so handlers can tell "absent" from "zero".
type Inbound struct {
	Type   string   `json:"type" msgpack:"type"`
	X      *float64 `json:"x,omitempty" msgpack:"x,omitempty"`
	Y      *float64 `json:"y,omitempty" msgpack:"y,omitempty"`
	Name   *string  `json:"name,omitempty" msgpack:"name,omitempty"`
	Active *bool    `json:"active,omitempty" msgpack:"active,omitempty"`
}

type MapSize struct {
	W float64 `json:"w" msgpack:"w"`
	H float64 `json:"h" msgpack:"h"`
}

// Init is the first message on every connection.
type Init struct {
	Type string  `json:"type" msgpack:"type"`
	ID   string  `json:"id" msgpack:"id"`
	Map  MapSize `json:"map" msgpack:"map"`
}

func NewInit(id string, w, h float64) Init {
	return Init{Type: TypeInit, ID: id, Map: MapSize{W: w, H: h}}
}

type PlayerView struct {
	ID           string  `json:"id" msgpack:"id"`
	Name         string  `json:"name" msgpack:"name"`
	X            float64 `json:"x" msgpack:"x"`
	Y            float64 `json:"y" msgpack:"y"`
	R            float64 `json:"r" msgpack:"r"`
	Color        string  `json:"color" msgpack:"color"`
	Score        int     `json:"score" msgpack:"score"`
	Boosting     bool    `json:"boosting" msgpack:"boosting"`
	Ammo         int     `json:"ammo" msgpack:"ammo"`
	Shielded     bool    `json:"shielded" msgpack:"shielded"`
	SpeedStacks  float64 `json:"speedStacks" msgpack:"speedStacks"`
	AttractRange float64 `json:"attractRange" msgpack:"attractRange"`
}

type FoodView struct {
	ID    int64   `json:"id" msgpack:"id"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	R     float64 `json:"r" msgpack:"r"`
	Type  string  `json:"type" msgpack:"type"`
	Color string  `json:"color" msgpack:"color"`
	Value float64 `json:"value" msgpack:"value"`
}

type ArrowView struct {
	ID       int64   `json:"id" msgpack:"id"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	VX       float64 `json:"vx" msgpack:"vx"`
	VY       float64 `json:"vy" msgpack:"vy"`
	Shooter  string  `json:"shooter" msgpack:"shooter"`
	TimeLeft float64 `json:"timeLeft" msgpack:"timeLeft"` // seconds
}

// State is the full per-tick snapshot.
type State struct {
	Type    string       `json:"type" msgpack:"type"`
	Players []PlayerView `json:"players" msgpack:"players"`
	Foods   []FoodView   `json:"foods" msgpack:"foods"`
	Arrows  []ArrowView  `json:"arrows" msgpack:"arrows"`
}

// Effect notifies one player of a power-up pickup. Durations are in seconds.
type Effect struct {
	Type     string   `json:"type" msgpack:"type"`
	Effect   string   `json:"effect" msgpack:"effect"`
	Stacks   *float64 `json:"stacks,omitempty" msgpack:"stacks,omitempty"`
	Range    *float64 `json:"range,omitempty" msgpack:"range,omitempty"`
	Ammo     *int     `json:"ammo,omitempty" msgpack:"ammo,omitempty"`
	Duration float64  `json:"duration" msgpack:"duration"`
}

func NewSpeedEffect(stacks, duration float64) Effect {
	return Effect{Type: TypeEffect, Effect: EffectSpeed, Stacks: &stacks, Duration: duration}
}

func NewShieldEffect(ammo int, duration float64) Effect {
	return Effect{Type: TypeEffect, Effect: EffectShield, Ammo: &ammo, Duration: duration}
}

func NewAttractEffect(rng, duration float64) Effect {
	return Effect{Type: TypeEffect, Effect: EffectAttract, Range: &rng, Duration: duration}
}

// Dead tells a player who eliminated them.
type Dead struct {
	Type       string `json:"type" msgpack:"type"`
	Killer     string `json:"killer" msgpack:"killer"`
	KillerName string `json:"killerName" msgpack:"killerName"`
}

func NewDead(killer, killerName string) Dead {
	return Dead{Type: TypeDead, Killer: killer, KillerName: killerName}
}

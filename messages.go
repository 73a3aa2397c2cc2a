package main

// worldConfig is the slice of tuning the client needs for prediction: the
// tick rate to pace its button polling, and the repeat timings so the UI can
// animate the withdraw cadence without waiting on the server.
type worldConfig struct {
	TickRateHz         int `json:"tickRateHz"`
	InventorySlots     int `json:"inventorySlots"`
	RepeatDelayTicks   int `json:"repeatDelayTicks"`
	RepeatCadenceTicks int `json:"repeatCadenceTicks"`
}

type joinResponse struct {
	ID          string       `json:"id"`
	Players     []Player     `json:"players"`
	GroundItems []GroundItem `json:"groundItems,omitempty"`
	Config      worldConfig  `json:"config"`
}

type stateMessage struct {
	Type        string       `json:"type"`
	Players     []Player     `json:"players"`
	GroundItems []GroundItem `json:"groundItems,omitempty"`
	Tick        uint64       `json:"t"`
	ServerTime  int64        `json:"serverTime"`
}

// clientMessage is the union of every inbound frame. Type selects which
// fields are meaningful.
type clientMessage struct {
	Type string `json:"type"`

	// type == "input"
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Facing string  `json:"facing,omitempty"`

	// type == "buttons": the client's current polled button state, not an
	// event stream. Edges are detected server-side.
	Primary  bool `json:"primary"`
	Withdraw bool `json:"withdraw"`

	// type == "focus"
	Region RegionID `json:"region"`

	// type == "menu"
	Open bool `json:"open"`

	// type == "heartbeat"
	SentAt int64 `json:"sentAt"`
}

type heartbeatMessage struct {
	Type       string `json:"type"`
	ServerTime int64  `json:"serverTime"`
	ClientTime int64  `json:"clientTime"`
	RTTMillis  int64  `json:"rtt"`
}

type diagnosticsPlayer struct {
	ID            string `json:"id"`
	LastHeartbeat int64  `json:"lastHeartbeat"`
	RTTMillis     int64  `json:"rttMillis"`
	MenuOpen      bool   `json:"menuOpen"`
	Holding       bool   `json:"holding"`
}

package protocol

import (
	"time"

	"github.com/reoring/skema"
)

// AllowReason explains why a detected request was not blocked.
type AllowReason string

const (
	ProtectionDisabled     AllowReason = "ProtectionDisabled"
	OwnedByFirstParty      AllowReason = "OwnedByFirstParty"
	RuleException          AllowReason = "RuleException"
	AdClickAttribution     AllowReason = "AdClickAttribution"
	OtherThirdPartyRequest AllowReason = "OtherThirdPartyRequest"
)

// BlockingState is Blocked or Allowed.
type BlockingState interface{ isBlockingState() }

type Blocked struct{}

type Allowed struct {
	Reason AllowReason `json:"reason"`
}

func (Blocked) isBlockingState() {}
func (Allowed) isBlockingState() {}

// DetectedRequest reports one tracker request seen on a page. Optional
// strings are nil when absent.
type DetectedRequest struct {
	URL        string        `json:"url"`
	State      BlockingState `json:"state"`
	OwnerName  *string       `json:"owner_name"`
	EntityName *string       `json:"entity_name"`
	Category   *string       `json:"category"`
	Prevalence *float64      `json:"prevalence"`
	PageURL    string        `json:"page_url"`
}

// Control is a timer command.
type Control interface{ isControl() }

type Start struct {
	Time float64 `json:"time"`
}

type Stop struct{}

type Toggle struct{}

func (Start) isControl()  {}
func (Stop) isControl()   {}
func (Toggle) isControl() {}

// Test is One or Two.
type Test interface{ isTest() }

type One struct{}

type Two struct{}

func (One) isTest() {}
func (Two) isTest() {}

// TimerResult describes how a timer finished.
type TimerResult interface{ isTimerResult() }

type Ended struct{}

type EndedPrematurely struct {
	After float64 `json:"after"`
}

type Other struct {
	Items [][]Test `json:"items"`
}

// WithOptional keeps absent apart from present for its control.
type WithOptional struct {
	Control skema.Opt[Control] `json:"control"`
}

func (Ended) isTimerResult()            {}
func (EndedPrematurely) isTimerResult() {}
func (Other) isTimerResult()            {}
func (WithOptional) isTimerResult()     {}

// Status is a timer progress report.
type Status interface{ isStatus() }

type StatusStart struct {
	Elapsed float64 `json:"elapsed"`
	Rem     float64 `json:"rem"`
}

type StatusTick struct {
	Elapsed float64 `json:"elapsed"`
	Rem     float64 `json:"rem"`
}

type StatusEnd struct {
	Result TimerResult `json:"result"`
}

func (StatusStart) isStatus() {}
func (StatusTick) isStatus()  {}
func (StatusEnd) isStatus()   {}

// MixedEnum is the literal "One", {Two: string} or {Three: {temp: number}},
// resolved in that order.
type MixedEnum interface{ isMixedEnum() }

type MixedOne struct{}

type MixedTwo struct {
	Two string `json:"Two"`
}

type MixedThree struct {
	Three Temperature `json:"Three"`
}

type Temperature struct {
	Temp float64 `json:"temp"`
}

func (MixedOne) isMixedEnum()   {}
func (MixedTwo) isMixedEnum()   {}
func (MixedThree) isMixedEnum() {}

// UnitOnlyEnum is a plain string enum of timer commands.
type UnitOnlyEnum string

const (
	UnitStop   UnitOnlyEnum = "Stop"
	UnitToggle UnitOnlyEnum = "Toggle"
)

type State struct {
	Control UnitOnlyEnum `json:"control"`
}

type Order struct {
	Created time.Time `json:"created"`
}

func init() {
	skema.Variants(map[string]BlockingState{"Blocked": Blocked{}, "Allowed": Allowed{}})
	skema.Variants(map[string]Control{"Start": Start{}, "Stop": Stop{}, "Toggle": Toggle{}})
	skema.Variants(map[string]Test{"One": One{}, "Two": Two{}})
	skema.Variants(map[string]TimerResult{
		"Ended":            Ended{},
		"EndedPrematurely": EndedPrematurely{},
		"Other":            Other{},
		"WithOptional":     WithOptional{},
	})
	skema.Variants(map[string]Status{"Start": StatusStart{}, "Tick": StatusTick{}, "End": StatusEnd{}})
	skema.Members[MixedEnum](MixedOne{}, MixedTwo{}, MixedThree{})
}

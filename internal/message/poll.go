package message

import (
	"errors"
	"math"
)

var (
	ErrAlreadyVoted  = errors.New("voter has already cast a vote")
	ErrUnknownOption = errors.New("unknown poll option")
)

type PollOption struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Votes int    `json:"votes"`
}

// Poll is a fixed-option vote attached to a message. The option list is
// immutable after creation; only vote counts and the voter record change.
type Poll struct {
	Question      string       `json:"question"`
	Options       []PollOption `json:"options"`
	AllowMultiple bool         `json:"allow_multiple"`

	// Voters maps actor id to the option ids they selected.
	Voters map[string][]int `json:"voters,omitempty"`
}

func NewPoll(question string, labels []string, allowMultiple bool) *Poll {
	opts := make([]PollOption, len(labels))
	for i, l := range labels {
		opts[i] = PollOption{ID: i + 1, Label: l}
	}
	return &Poll{Question: question, Options: opts, AllowMultiple: allowMultiple}
}

// HasVoted reports whether the actor has already cast a vote. With
// AllowMultiple unset this locks the whole poll for them.
func (p *Poll) HasVoted(actorID string) bool {
	_, ok := p.Voters[actorID]
	return ok
}

// Record applies a voter's selected option set in one call. A second vote is
// rejected unless the poll allows multiple.
func (p *Poll) Record(actorID string, optionIDs []int) error {
	if p.HasVoted(actorID) && !p.AllowMultiple {
		return ErrAlreadyVoted
	}
	for _, id := range optionIDs {
		if p.option(id) == nil {
			return ErrUnknownOption
		}
	}
	for _, id := range optionIDs {
		p.option(id).Votes++
	}
	if p.Voters == nil {
		p.Voters = make(map[string][]int)
	}
	p.Voters[actorID] = append(p.Voters[actorID], optionIDs...)
	return nil
}

func (p *Poll) option(id int) *PollOption {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}

func (p *Poll) TotalVotes() int {
	total := 0
	for _, o := range p.Options {
		total += o.Votes
	}
	return total
}

// Percentage returns the option's share of all votes, rounded to one
// decimal. Zero-total polls report 0.0 for every option.
func (p *Poll) Percentage(optionID int) float64 {
	total := p.TotalVotes()
	o := p.option(optionID)
	if o == nil || total == 0 {
		return 0
	}
	return math.Round(float64(o.Votes)/float64(total)*1000) / 10
}

func (p *Poll) clone() *Poll {
	cp := *p
	cp.Options = make([]PollOption, len(p.Options))
	copy(cp.Options, p.Options)
	if p.Voters != nil {
		cp.Voters = make(map[string][]int, len(p.Voters))
		for id, opts := range p.Voters {
			sel := make([]int, len(opts))
			copy(sel, opts)
			cp.Voters[id] = sel
		}
	}
	return &cp
}

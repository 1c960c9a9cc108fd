package poker

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Value represents a card value
type Value string

const (
	Ace   Value = "A"
	Two   Value = "2"
	Three Value = "3"
	Four  Value = "4"
	Five  Value = "5"
	Six   Value = "6"
	Seven Value = "7"
	Eight Value = "8"
	Nine  Value = "9"
	Ten   Value = "10"
	Jack  Value = "J"
	Queen Value = "Q"
	King  Value = "K"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

var (
	allSuits  = []Suit{Spades, Hearts, Diamonds, Clubs}
	allValues = []Value{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}
)

// Card represents a playing card
type Card struct {
	suit  Suit
	value Value
}

// NewCard creates a Card with the given suit and value.
func NewCard(suit Suit, value Value) Card {
	return Card{suit: suit, value: value}
}

// CardJSON represents a card for JSON serialization
type CardJSON struct {
	Suit  string `json:"suit"`
	Value string `json:"value"`
}

// MarshalJSON implements json.Marshaler interface for Card
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(CardJSON{
		Suit:  string(c.suit),
		Value: string(c.value),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface for Card
func (c *Card) UnmarshalJSON(data []byte) error {
	var cardJSON CardJSON
	if err := json.Unmarshal(data, &cardJSON); err != nil {
		return err
	}
	suit, err := parseSuit(cardJSON.Suit)
	if err != nil {
		return err
	}
	value, err := parseValue(cardJSON.Value)
	if err != nil {
		return err
	}
	c.suit, c.value = suit, value
	return nil
}

func parseSuit(s string) (Suit, error) {
	switch s {
	case "♠", "s", "S", "spades", "Spades":
		return Spades, nil
	case "♥", "h", "H", "hearts", "Hearts":
		return Hearts, nil
	case "♦", "d", "D", "diamonds", "Diamonds":
		return Diamonds, nil
	case "♣", "c", "C", "clubs", "Clubs":
		return Clubs, nil
	}
	return "", fmt.Errorf("invalid suit: %s", s)
}

func parseValue(s string) (Value, error) {
	switch s {
	case "A", "a", "ace", "Ace":
		return Ace, nil
	case "K", "k", "king", "King":
		return King, nil
	case "Q", "q", "queen", "Queen":
		return Queen, nil
	case "J", "j", "jack", "Jack":
		return Jack, nil
	case "10", "T", "t", "ten", "Ten":
		return Ten, nil
	case "9", "nine", "Nine":
		return Nine, nil
	case "8", "eight", "Eight":
		return Eight, nil
	case "7", "seven", "Seven":
		return Seven, nil
	case "6", "six", "Six":
		return Six, nil
	case "5", "five", "Five":
		return Five, nil
	case "4", "four", "Four":
		return Four, nil
	case "3", "three", "Three":
		return Three, nil
	case "2", "two", "Two":
		return Two, nil
	}
	return "", fmt.Errorf("invalid value: %s", s)
}

// ParseCard parses the two-character notation used by evaluators and
// transports, e.g. "Ah", "Td", "9c". The value part also accepts "10".
func ParseCard(s string) (Card, error) {
	r := []rune(s)
	if len(r) < 2 {
		return Card{}, fmt.Errorf("invalid card: %q", s)
	}
	value, err := parseValue(string(r[:len(r)-1]))
	if err != nil {
		return Card{}, err
	}
	suit, err := parseSuit(string(r[len(r)-1]))
	if err != nil {
		return Card{}, err
	}
	return Card{suit: suit, value: value}, nil
}

// MustParseCards parses each card with ParseCard and panics on
// malformed input. Intended for fixtures.
func MustParseCards(cards ...string) []Card {
	out := make([]Card, 0, len(cards))
	for _, s := range cards {
		c, err := ParseCard(s)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// String returns a string representation of the card
func (c Card) String() string {
	return string(c.value) + string(c.suit)
}

// Short returns the two-character notation ("Ah", "Td").
func (c Card) Short() string {
	v := string(c.value)
	if c.value == Ten {
		v = "T"
	}
	var s string
	switch c.suit {
	case Spades:
		s = "s"
	case Hearts:
		s = "h"
	case Diamonds:
		s = "d"
	case Clubs:
		s = "c"
	}
	return v + s
}

// GetSuit returns the card's suit
func (c Card) GetSuit() string {
	return string(c.suit)
}

// Deck is an ordered sequence of undealt cards. A fresh deck is built for
// every hand; there is no way to put cards back.
type Deck struct {
	cards []Card
}

// NewShuffledDeck builds the 52 standard cards and shuffles them with rng.
// The caller owns rng; the deck keeps no reference to it.
func NewShuffledDeck(rng *rand.Rand) *Deck {
	deck := &Deck{cards: make([]Card, 0, DeckSize)}
	for _, suit := range allSuits {
		for _, value := range allValues {
			deck.cards = append(deck.cards, Card{suit: suit, value: value})
		}
	}
	rng.Shuffle(len(deck.cards), func(i, j int) {
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	})
	return deck
}

// NewDeckFromCards creates a deck that deals the given cards in order.
func NewDeckFromCards(cards []Card) *Deck {
	deck := &Deck{cards: make([]Card, len(cards))}
	copy(deck.cards, cards)
	return deck
}

// Draw removes and returns the first n cards of the deck.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d cards, %d left", ErrDeckExhausted, n, len(d.cards))
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn, nil
}

// Size returns the number of cards remaining in the deck
func (d *Deck) Size() int {
	return len(d.cards)
}

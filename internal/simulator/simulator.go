// Package simulator fabricates incoming order candidates so the board can
// be demoed without real WhatsApp or phone traffic. Candidates sit in a
// pending queue until someone accepts or rejects them.
package simulator

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mesero-nana/api/internal/domain"
	"github.com/mesero-nana/api/internal/enum"
	"github.com/mesero-nana/api/internal/menu"
	"github.com/mesero-nana/api/internal/pricing"
)

// Errors returned by the generator.
var (
	ErrUnsupportedSource = errors.New("source cannot be simulated")
	ErrCandidateNotFound = errors.New("candidate not found")
)

// Candidate is a fabricated incoming order awaiting review.
type Candidate struct {
	ID           string              `json:"id"`
	Source       string              `json:"source"`
	CustomerInfo domain.CustomerInfo `json:"customerInfo"`
	Items        []domain.OrderItem  `json:"items"`
	Total        string              `json:"total"`
	ReceivedAt   time.Time           `json:"receivedAt"`
}

type customerPool struct {
	name    string
	phone   string
	address string
}

var whatsappCustomers = []customerPool{
	{"Ana Martínez", "+52 55 1111 2222", "Av. Insurgentes 456, Col. Roma"},
	{"Luis Hernández", "+52 55 3333 4444", "Calle Madero 78, Col. Centro"},
	{"Sofía Ramírez", "+52 55 5555 6666", "Av. Universidad 120, Col. Del Valle"},
	{"Diego Torres", "+52 55 7777 8888", "Calle Durango 15, Col. Condesa"},
}

var phoneCustomers = []customerPool{
	{"Roberto Sánchez", "+52 55 2222 1111", ""},
	{"Lucía Fernández", "+52 55 4444 3333", ""},
	{"Miguel Ángel Pérez", "+52 55 6666 5555", ""},
}

// Generator builds candidates from the menu catalog.
type Generator struct {
	mu      sync.Mutex
	pending []Candidate
	rng     *rand.Rand
	now     func() time.Time
}

// New creates a Generator with its own random source.
func New() *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// Generate fabricates a candidate for the given source and queues it.
// Only external sources can be simulated.
func (g *Generator) Generate(source string) (Candidate, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var customer domain.CustomerInfo
	switch source {
	case enum.OrderSourceWhatsApp:
		c := whatsappCustomers[g.rng.Intn(len(whatsappCustomers))]
		customer = domain.CustomerInfo{
			Name:            c.name,
			Phone:           c.phone,
			DeliveryType:    enum.DeliveryTypeDomicilio,
			DeliveryAddress: c.address,
		}
	case enum.OrderSourcePhone:
		c := phoneCustomers[g.rng.Intn(len(phoneCustomers))]
		customer = domain.CustomerInfo{
			Name:         c.name,
			Phone:        c.phone,
			DeliveryType: enum.DeliveryTypeRecoger,
		}
	default:
		return Candidate{}, ErrUnsupportedSource
	}

	items := g.randomItems()
	total := pricing.OrderTotal(domain.Order{Items: items})

	candidate := Candidate{
		ID:           uuid.New().String(),
		Source:       source,
		CustomerInfo: customer,
		Items:        items,
		Total:        total.StringFixed(2),
		ReceivedAt:   g.now(),
	}
	g.pending = append(g.pending, candidate)
	return candidate, nil
}

// randomItems draws one to three distinct catalog entries with quantities
// of one or two.
func (g *Generator) randomItems() []domain.OrderItem {
	var all []domain.MenuItem
	for _, cat := range menu.Catalog() {
		all = append(all, cat.Items...)
	}
	g.rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	n := g.rng.Intn(3) + 1
	if n > len(all) {
		n = len(all)
	}
	items := make([]domain.OrderItem, 0, n)
	for _, m := range all[:n] {
		items = append(items, domain.OrderItem{
			ID:        uuid.New().String(),
			Name:      m.Name,
			UnitPrice: m.BasePrice,
			Quantity:  g.rng.Intn(2) + 1,
		})
	}
	return items
}

// Pending returns the queued candidates in arrival order.
func (g *Generator) Pending() []Candidate {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Candidate(nil), g.pending...)
}

// Take removes and returns the candidate with the given id. Accepting and
// rejecting both go through Take; acceptance then creates the real order.
func (g *Generator) Take(id string) (Candidate, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, c := range g.pending {
		if c.ID == id {
			g.pending = append(g.pending[:i], g.pending[i+1:]...)
			return c, nil
		}
	}
	return Candidate{}, ErrCandidateNotFound
}

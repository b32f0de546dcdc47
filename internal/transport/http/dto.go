package http

import (
	"fmt"
	"net/http"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// Actors come from the gateway's identity headers; the engine itself does no
// authentication.
const (
	headerActorID   = "X-Actor-Id"
	headerActorName = "X-Actor-Name"
)

func actorFromRequest(r *http.Request) audit.Actor {
	return audit.Actor{
		ID:          r.Header.Get(headerActorID),
		DisplayName: r.Header.Get(headerActorName),
	}
}

func parseMoney(s string) (*domain.Money, error) {
	if s == "" {
		return nil, nil
	}
	return domain.NewMoneyFromString(s)
}

func parseDate(s string) (civil.Date, error) {
	date, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return date, nil
}

func parseDatePtr(s string) (*civil.Date, error) {
	if s == "" {
		return nil, nil
	}
	date, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func moneyString(m *domain.Money) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func moneyStringPtr(m *domain.Money) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}

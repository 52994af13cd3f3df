// Package auth covers sign-in: credential checks, token issuance and the
// security trail (login attempts, audit log, suspicious activity).
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Errors returned by the auth service.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = errors.New("unknown user")
)

// maxAttempts caps the login-attempt ring so an attacker cannot grow the
// trail without bound.
const maxAttempts = 1000

// LoginAttempt records one sign-in try, successful or not.
type LoginAttempt struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"userAgent"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditEntry records a security-relevant action.
type AuditEntry struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	IP        string    `json:"ip"`
	Timestamp time.Time `json:"timestamp"`
}

// SuspiciousActivity flags a pattern in the recent attempt trail.
type SuspiciousActivity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	Count       int       `json:"count"`
	DetectedAt  time.Time `json:"detectedAt"`
}

// Service authenticates users and keeps the security trail in memory.
type Service struct {
	jwtSecret string

	mu       sync.Mutex
	users    []User
	attempts []LoginAttempt
	audit    []AuditEntry

	now func() time.Time
}

// NewService builds a Service over the given accounts.
func NewService(jwtSecret string, users []User) *Service {
	return &Service{
		jwtSecret: jwtSecret,
		users:     users,
		now:       time.Now,
	}
}

// Login checks the credentials and returns a signed token plus the user.
// Every try is recorded in the attempt ring and the audit log.
func (s *Service) Login(username, password, ip, userAgent string) (string, User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.findUser(username)
	if !ok {
		s.recordAttempt(username, false, ip, userAgent)
		s.recordAudit(username, "LOGIN_FAILED", "unknown user", ip)
		return "", User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordAttempt(username, false, ip, userAgent)
		s.recordAudit(username, "LOGIN_FAILED", "wrong password", ip)
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.jwtSecret, user.ID, user.Username, user.Role)
	if err != nil {
		return "", User{}, err
	}

	s.recordAttempt(username, true, ip, userAgent)
	s.recordAudit(username, "LOGIN", "signed in", ip)
	return token, user, nil
}

// Logout records the sign-out in the audit log. Tokens are stateless, so
// this is purely a trail entry.
func (s *Service) Logout(username, ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordAudit(username, "LOGOUT", "signed out", ip)
}

// UserByID returns the account behind a token's user id claim.
func (s *Service) UserByID(id uuid.UUID) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUnknownUser
}

// LoginAttempts returns the attempt trail, most recent first.
func (s *Service) LoginAttempts() []LoginAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LoginAttempt, len(s.attempts))
	for i, a := range s.attempts {
		out[len(s.attempts)-1-i] = a
	}
	return out
}

// AuditLog returns the audit trail, most recent first.
func (s *Service) AuditLog() []AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]AuditEntry, len(s.audit))
	for i, e := range s.audit {
		out[len(s.audit)-1-i] = e
	}
	return out
}

// Suspicious scans the last hour of attempts for brute-force patterns:
// five or more failures from one IP, three or more failures against one
// username, or one username tried from more than two IPs.
func (s *Service) Suspicious() []SuspiciousActivity {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-time.Hour)
	failuresByIP := make(map[string]int)
	failuresByUser := make(map[string]int)
	ipsByUser := make(map[string]map[string]bool)

	for _, a := range s.attempts {
		if a.Timestamp.Before(cutoff) {
			continue
		}
		if !a.Success {
			failuresByIP[a.IP]++
			failuresByUser[a.Username]++
		}
		if ipsByUser[a.Username] == nil {
			ipsByUser[a.Username] = make(map[string]bool)
		}
		ipsByUser[a.Username][a.IP] = true
	}

	var found []SuspiciousActivity
	now := s.now()
	for ip, n := range failuresByIP {
		if n >= 5 {
			found = append(found, SuspiciousActivity{
				Type:        "MULTIPLE_FAILED_ATTEMPTS_IP",
				Description: "multiple failed login attempts from one IP in the last hour",
				Subject:     ip,
				Count:       n,
				DetectedAt:  now,
			})
		}
	}
	for username, n := range failuresByUser {
		if n >= 3 {
			found = append(found, SuspiciousActivity{
				Type:        "MULTIPLE_FAILED_ATTEMPTS_USER",
				Description: "multiple failed login attempts against one account in the last hour",
				Subject:     username,
				Count:       n,
				DetectedAt:  now,
			})
		}
	}
	for username, ips := range ipsByUser {
		if len(ips) > 2 {
			found = append(found, SuspiciousActivity{
				Type:        "MULTIPLE_IPS_USER",
				Description: "one account used from several IPs in the last hour",
				Subject:     username,
				Count:       len(ips),
				DetectedAt:  now,
			})
		}
	}
	return found
}

func (s *Service) findUser(username string) (User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

func (s *Service) recordAttempt(username string, success bool, ip, userAgent string) {
	s.attempts = append(s.attempts, LoginAttempt{
		ID:        uuid.New().String(),
		Username:  username,
		Success:   success,
		IP:        ip,
		UserAgent: userAgent,
		Timestamp: s.now(),
	})
	if len(s.attempts) > maxAttempts {
		s.attempts = s.attempts[len(s.attempts)-maxAttempts:]
	}
}

func (s *Service) recordAudit(username, action, details, ip string) {
	s.audit = append(s.audit, AuditEntry{
		ID:        uuid.New().String(),
		Username:  username,
		Action:    action,
		Details:   details,
		IP:        ip,
		Timestamp: s.now(),
	})
}

package api

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agriconnect/portal/internal/core/domain"
)

// page mirrors the handler payload shape; templates only see field names.
type page struct {
	View     domain.View
	Account  *domain.Account
	Error    string
	Form     map[string]string
	PeerID   string
	Draft    string
	Messages []domain.Message
	Accounts []domain.Account
}

func render(t *testing.T, name string, data page) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewRenderer().Render(&buf, name, data, nil); err != nil {
		t.Fatalf("render %s: %v", name, err)
	}
	return buf.String()
}

func TestRenderer_Dashboard(t *testing.T) {
	me := &domain.Account{ID: "1", Name: "Alice", Role: domain.RoleFarmer}
	out := render(t, "dashboard.html", page{
		View:    domain.ViewDashboard,
		Account: me,
		PeerID:  "2",
		Messages: []domain.Message{
			{ID: "m1", SenderID: "1", ReceiverID: "2", Content: "morning"},
			{ID: "m2", SenderID: "2", ReceiverID: "1", Content: "hi back"},
		},
	})

	if !strings.Contains(out, "Signed in as Alice (farmer)") {
		t.Fatalf("welcome line missing:\n%s", out)
	}
	if !strings.Contains(out, `class="message mine"`) || !strings.Contains(out, `class="message theirs"`) {
		t.Fatalf("expected both message alignments:\n%s", out)
	}
	if !strings.Contains(out, `name="peer_id" value="2"`) {
		t.Fatalf("composer must carry the current peer id:\n%s", out)
	}
}

func TestRenderer_DashboardEmptyThread(t *testing.T) {
	out := render(t, "dashboard.html", page{
		View:    domain.ViewDashboard,
		Account: &domain.Account{ID: "1", Name: "Alice", Role: domain.RoleFarmer},
	})
	if !strings.Contains(out, "No messages yet.") {
		t.Fatalf("empty state missing:\n%s", out)
	}
}

func TestRenderer_Admin(t *testing.T) {
	out := render(t, "admin.html", page{
		View: domain.ViewAdmin,
		Accounts: []domain.Account{
			{ID: "1", Name: "Alice", Email: "a@farm.io", Role: domain.RoleFarmer, Active: true},
			{ID: "2", Name: "Bob", Email: "b@supply.io", Role: domain.RoleSupplier, Active: false},
		},
	})

	if !strings.Contains(out, "Alice") || !strings.Contains(out, "Bob") {
		t.Fatalf("account rows missing:\n%s", out)
	}
	if !strings.Contains(out, "Active") || !strings.Contains(out, "Inactive") {
		t.Fatalf("activity badges missing:\n%s", out)
	}
	if !strings.Contains(out, `name="account_id" value="2"`) {
		t.Fatalf("toggle forms must carry the row account id:\n%s", out)
	}
}

func TestRenderer_AdminEmptyList(t *testing.T) {
	out := render(t, "admin.html", page{View: domain.ViewAdmin})
	if !strings.Contains(out, "No accounts yet.") {
		t.Fatalf("empty state missing:\n%s", out)
	}
}

func TestRenderer_EveryViewParses(t *testing.T) {
	data := page{Form: map[string]string{}}
	for _, name := range []string{"home.html", "login.html", "register.html", "dashboard.html", "admin.html", "error.html"} {
		if out := render(t, name, data); !strings.Contains(out, "AgriConnect") {
			t.Fatalf("%s rendered without the layout:\n%s", name, out)
		}
	}
}

func TestRenderer_ErrorEscaping(t *testing.T) {
	out := render(t, "login.html", page{
		View:  domain.ViewLogin,
		Form:  map[string]string{},
		Error: `<script>alert(1)</script>`,
	})
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Fatalf("backend message must be escaped:\n%s", out)
	}
}

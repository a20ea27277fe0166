package backend

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"gopkg.in/h2non/gock.v1"

	"github.com/agriconnect/portal/internal/core/ports"
)

const testBase = "http://backend.test"

func newTestClient() (*Client, *http.Client) {
	httpc := &http.Client{}
	gock.InterceptClient(httpc)
	return New(testBase, httpc, zerolog.Nop()), httpc
}

func TestClient_Register_Success(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Post("/auth/register").
		MatchHeader("Content-Type", "application/json").
		JSON(map[string]string{"name": "A", "email": "a@x.com", "password": "p", "role": "farmer"}).
		Reply(201)

	c, _ := newTestClient()
	err := c.Register(context.Background(), ports.RegisterInput{
		Name: "A", Email: "a@x.com", Password: "p", Role: "farmer",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !gock.IsDone() {
		t.Fatalf("expected register request to be sent")
	}
}

func TestClient_Register_DetailMessage(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Post("/auth/register").
		Reply(409).
		JSON(map[string]string{"detail": "Email already registered"})

	c, _ := newTestClient()
	err := c.Register(context.Background(), ports.RegisterInput{Email: "a@x.com", Password: "p"})
	if err == nil || err.Error() != "Email already registered" {
		t.Fatalf("expected detail message, got %v", err)
	}
}

func TestClient_FailureFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json without detail", `{"error":"boom"}`, `{"error":"boom"}`},
		{"non-json body", "<html>nope</html>", "Request failed"},
		{"empty body", "", "Request failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer gock.Off()

			gock.New(testBase).
				Get("/admin/accounts").
				Reply(500).
				BodyString(tt.body)

			c, _ := newTestClient()
			_, err := c.Accounts(context.Background())
			if err == nil || err.Error() != tt.want {
				t.Fatalf("expected error %q, got %v", tt.want, err)
			}
		})
	}
}

func TestClient_Login_ParsesAccount(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Post("/auth/login").
		JSON(map[string]string{"email": "a@x.com", "password": "p"}).
		Reply(200).
		JSON(map[string]any{"account": map[string]any{"id": "1", "name": "A", "role": "farmer"}})

	c, _ := newTestClient()
	account, err := c.Login(context.Background(), "a@x.com", "p")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if account.ID != "1" || account.Name != "A" || account.Role != "farmer" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestClient_Messages_PeerFilter(t *testing.T) {
	t.Run("no peer omits peer_id", func(t *testing.T) {
		defer gock.Off()

		gock.New(testBase).
			Get("/messages").
			MatchParam("user_id", "1").
			AddMatcher(func(r *http.Request, _ *gock.Request) (bool, error) {
				return !r.URL.Query().Has("peer_id"), nil
			}).
			Reply(200).
			JSON(map[string]any{"messages": []map[string]any{
				{"_id": "m1", "sender_id": "1", "receiver_id": "2", "content": "hi"},
			}})

		c, _ := newTestClient()
		msgs, err := c.Messages(context.Background(), "1", "")
		if err != nil {
			t.Fatalf("Messages returned error: %v", err)
		}
		if len(msgs) != 1 || msgs[0].ID != "m1" || msgs[0].Content != "hi" {
			t.Fatalf("unexpected messages: %+v", msgs)
		}
	})

	t.Run("peer filter is url-encoded", func(t *testing.T) {
		defer gock.Off()

		gock.New(testBase).
			Get("/messages").
			AddMatcher(func(r *http.Request, _ *gock.Request) (bool, error) {
				q := r.URL.Query()
				return q.Get("user_id") == "1" && q.Get("peer_id") == "user 2&co", nil
			}).
			Reply(200).
			JSON(map[string]any{"messages": []any{}})

		c, _ := newTestClient()
		if _, err := c.Messages(context.Background(), "1", "user 2&co"); err != nil {
			t.Fatalf("Messages returned error: %v", err)
		}
		if !gock.IsDone() {
			t.Fatalf("expected encoded peer_id to match")
		}
	})
}

func TestClient_Accounts_ParsesList(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/admin/accounts").
		Reply(200).
		JSON(map[string]any{"accounts": []map[string]any{
			{"_id": "1", "name": "A", "email": "a@x.com", "role": "farmer", "is_active": true},
			{"_id": "2", "name": "B", "email": "b@x.com", "role": "supplier", "is_active": false},
		}})

	c, _ := newTestClient()
	accounts, err := c.Accounts(context.Background())
	if err != nil {
		t.Fatalf("Accounts returned error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].ID != "1" || !accounts[0].Active {
		t.Fatalf("unexpected first account: %+v", accounts[0])
	}
	if accounts[1].ID != "2" || accounts[1].Active {
		t.Fatalf("unexpected second account: %+v", accounts[1])
	}
}

func TestClient_SetAccountActive(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Post("/admin/toggle-active").
		JSON(map[string]any{"account_id": "2", "active": false}).
		Reply(200)

	c, _ := newTestClient()
	if err := c.SetAccountActive(context.Background(), "2", false); err != nil {
		t.Fatalf("SetAccountActive returned error: %v", err)
	}
	if !gock.IsDone() {
		t.Fatalf("expected toggle request to be sent")
	}
}

func TestClient_UnparseableSuccessBody(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/admin/accounts").
		Reply(200).
		BodyString("not json at all")

	c, _ := newTestClient()
	accounts, err := c.Accounts(context.Background())
	if err != nil {
		t.Fatalf("unparseable success body must not fail, got %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected absent result, got %+v", accounts)
	}
}

func TestClient_TransportError(t *testing.T) {
	defer gock.Off()

	gock.New(testBase).
		Get("/test").
		ReplyError(context.DeadlineExceeded)

	c, _ := newTestClient()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatalf("expected transport error")
	}
}

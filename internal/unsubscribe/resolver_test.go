package unsubscribe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"
)

type fakeMailbox struct {
	message *gmailapi.Message
	listErr error
	getErr  error
	noMail  bool

	sendErr error
	sentRaw []string

	labels    []*gmailapi.Label
	createErr error
	created   []string
	labeled   map[string][]string
}

func (f *fakeMailbox) ListMessages(query string, maxResults int64) ([]*gmailapi.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.noMail {
		return nil, nil
	}
	return []*gmailapi.Message{{Id: f.message.Id}}, nil
}

func (f *fakeMailbox) GetMessage(messageID string) (*gmailapi.Message, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.message, nil
}

func (f *fakeMailbox) SendRaw(raw string) (*gmailapi.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sentRaw = append(f.sentRaw, raw)
	return &gmailapi.Message{Id: "sent-1"}, nil
}

func (f *fakeMailbox) ListLabels() ([]*gmailapi.Label, error) {
	return f.labels, nil
}

func (f *fakeMailbox) CreateLabel(name string) (*gmailapi.Label, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	label := &gmailapi.Label{Id: "label-" + name, Name: name}
	f.labels = append(f.labels, label)
	f.created = append(f.created, name)
	return label, nil
}

func (f *fakeMailbox) AddLabel(messageID, labelID string) error {
	if f.labeled == nil {
		f.labeled = map[string][]string{}
	}
	f.labeled[messageID] = append(f.labeled[messageID], labelID)
	return nil
}

func testMessage(id, listUnsubscribe, snippet string) *gmailapi.Message {
	var headers []*gmailapi.MessagePartHeader
	if listUnsubscribe != "" {
		headers = append(headers, &gmailapi.MessagePartHeader{
			Name:  "List-Unsubscribe",
			Value: listUnsubscribe,
		})
	}
	return &gmailapi.Message{
		Id:      id,
		Snippet: snippet,
		Payload: &gmailapi.MessagePart{Headers: headers},
	}
}

func TestResolveMailto(t *testing.T) {
	mailbox := &fakeMailbox{
		message: testMessage("m1", "<mailto:leave@list.example>", ""),
	}
	resolver := NewResolver(mailbox, nil, nil)

	got := resolver.Resolve(context.Background(), "news@list.example")

	assert.Equal(t, MethodMailto, got.Method)
	assert.True(t, got.Success)
	assert.Equal(t, "leave@list.example", got.Address)
	assert.Equal(t, "m1", got.MessageID)

	require.Len(t, mailbox.sentRaw, 1)
	decoded, err := base64.RawURLEncoding.DecodeString(mailbox.sentRaw[0])
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "To: leave@list.example")
	assert.Contains(t, string(decoded), "Subject: Unsubscribe")
	assert.Contains(t, string(decoded), "Please unsubscribe me from this mailing list.")

	assert.Equal(t, []string{"label-UNSUBSCRIBED"}, mailbox.labeled["m1"])
	assert.Equal(t, []string{"UNSUBSCRIBED"}, mailbox.created)
}

func TestResolveMailtoDropsQueryParams(t *testing.T) {
	mailbox := &fakeMailbox{
		message: testMessage("m1", "<mailto:leave@list.example?subject=unsubscribe>", ""),
	}
	resolver := NewResolver(mailbox, nil, nil)

	got := resolver.Resolve(context.Background(), "news@list.example")
	assert.Equal(t, MethodMailto, got.Method)
	assert.Equal(t, "leave@list.example", got.Address)
}

func TestResolveCandidatePrecedence(t *testing.T) {
	// A malformed mailto candidate must not abort the chain: the https
	// candidate after it wins.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	header := fmt.Sprintf("<mailto:>, <%s/unsubscribe>", srv.URL)
	mailbox := &fakeMailbox{message: testMessage("m1", header, "")}
	resolver := NewResolver(mailbox, srv.Client(), nil)

	got := resolver.Resolve(context.Background(), "news@list.example")

	assert.Equal(t, MethodURL, got.Method)
	assert.True(t, got.Success)
	assert.Equal(t, srv.URL+"/unsubscribe", got.URL)
	assert.Empty(t, mailbox.sentRaw)
	assert.Equal(t, []string{"label-UNSUBSCRIBED"}, mailbox.labeled["m1"])
}

func TestResolveFailingMailtoFallsThroughToURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	header := fmt.Sprintf("<mailto:leave@list.example>, <%s/u>", srv.URL)
	mailbox := &fakeMailbox{
		message: testMessage("m1", header, ""),
		sendErr: errors.New("send rejected"),
	}
	resolver := NewResolver(mailbox, srv.Client(), nil)

	got := resolver.Resolve(context.Background(), "news@list.example")
	assert.Equal(t, MethodURL, got.Method)
	assert.True(t, got.Success)
}

func TestResolveRejectedURLFallsThroughToSnippet(t *testing.T) {
	rejecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer rejecting.Close()

	header := fmt.Sprintf("<%s/gone>", rejecting.URL)
	snippet := "Click " + rejecting.URL + "/snippet-opt-out to stop these emails"
	mailbox := &fakeMailbox{message: testMessage("m1", header, snippet)}
	resolver := NewResolver(mailbox, rejecting.Client(), nil)

	got := resolver.Resolve(context.Background(), "news@list.example")
	assert.Equal(t, MethodURLSnippet, got.Method)
	assert.True(t, got.Success)
	assert.Equal(t, rejecting.URL+"/snippet-opt-out", got.URL)
	assert.Equal(t, []string{"label-UNSUBSCRIBED"}, mailbox.labeled["m1"])
}

func TestResolveSnippetFallbackWithoutHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	mailbox := &fakeMailbox{
		message: testMessage("m1", "", "Unsubscribe here: "+srv.URL+"/opt-out?u=42"),
	}
	resolver := NewResolver(mailbox, srv.Client(), nil)

	got := resolver.Resolve(context.Background(), "news@list.example")
	assert.Equal(t, MethodURLSnippet, got.Method)
	assert.True(t, got.Success)
}

func TestResolveLabelOnly(t *testing.T) {
	mailbox := &fakeMailbox{
		message: testMessage("m1", "", "Plain newsletter with no links"),
	}
	resolver := NewResolver(mailbox, nil, nil)

	got := resolver.Resolve(context.Background(), "news@list.example")

	// The label is applied, but resolution does not claim success
	assert.Equal(t, MethodLabelOnly, got.Method)
	assert.False(t, got.Success)
	assert.Equal(t, []string{"label-UNSUBSCRIBED"}, mailbox.labeled["m1"])
}

func TestResolveEarlyTerminals(t *testing.T) {
	tests := []struct {
		name    string
		mailbox *fakeMailbox
		method  string
	}{
		{"no messages", &fakeMailbox{noMail: true}, MethodNoMessages},
		{"list error", &fakeMailbox{listErr: errors.New("quota exceeded")}, MethodListError},
		{"fetch error", &fakeMailbox{message: testMessage("m1", "", ""), getErr: errors.New("not found")}, MethodFetchError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewResolver(tt.mailbox, nil, nil)
			got := resolver.Resolve(context.Background(), "news@list.example")
			assert.Equal(t, tt.method, got.Method)
			assert.False(t, got.Success)
			assert.Empty(t, tt.mailbox.labeled)
		})
	}
}

func TestEnsureLabelReusesExisting(t *testing.T) {
	mailbox := &fakeMailbox{
		message: testMessage("m1", "", ""),
		labels:  []*gmailapi.Label{{Id: "existing-id", Name: "UNSUBSCRIBED"}},
	}
	resolver := NewResolver(mailbox, nil, nil)

	resolver.Resolve(context.Background(), "news@list.example")

	assert.Empty(t, mailbox.created)
	assert.Equal(t, []string{"existing-id"}, mailbox.labeled["m1"])
}

func TestParseCandidates(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected []string
	}{
		{"empty", "", nil},
		{"single mailto", "<mailto:a@b.example>", []string{"mailto:a@b.example"}},
		{
			"mixed with whitespace",
			"<mailto:a@b.example> , <https://b.example/u>",
			[]string{"mailto:a@b.example", "https://b.example/u"},
		},
		{"bare value without brackets", "https://b.example/u", []string{"https://b.example/u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCandidates(tt.header))
		})
	}
}

package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/mailsense/mailsense/internal/genai"
	"github.com/mailsense/mailsense/internal/gmail"
	"github.com/mailsense/mailsense/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	gmailClients map[string]*gmail.Client // Maps account name to Gmail client
	generator    genai.Generator
	provider     *instrumentation.Provider
	metrics      *instrumentation.Metrics
	auditLogger  *instrumentation.AuditLogger
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a new server context. The generator may be nil when
// no model API key is configured; tools that need it report the missing
// configuration per call.
func NewServerContext(ctx context.Context, generator genai.Generator) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	// Try to create default Gmail client, but don't fail if token is missing
	// Clients will be lazily initialized when first needed
	gmailClients := make(map[string]*gmail.Client)
	if gmail.HasToken() {
		gmailClient, err := gmail.NewClient(shutdownCtx)
		if err != nil {
			// Log but don't fail - will be re-attempted on first use
			fmt.Printf("Warning: failed to create Gmail client for default account: %v\n", err)
		} else {
			gmailClients["default"] = gmailClient
		}
	}

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		gmailClients: gmailClients,
		generator:    generator,
		shutdown:     false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// GmailClientForAccount returns the Gmail client for a specific account
// Creates and caches the client if it doesn't exist yet
// Returns nil if the account has no token
func (sc *ServerContext) GmailClientForAccount(account string) *gmail.Client {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	// Check if client already exists
	if client, ok := sc.gmailClients[account]; ok {
		return client
	}

	// Try to create client if token exists
	if !gmail.HasTokenForAccount(account) {
		return nil
	}

	client, err := gmail.NewClientForAccount(sc.ctx, account)
	if err != nil {
		fmt.Printf("Warning: failed to create Gmail client for account %s: %v\n", account, err)
		return nil
	}

	sc.gmailClients[account] = client
	return client
}

// GmailClient returns the Gmail client for the default account
func (sc *ServerContext) GmailClient() *gmail.Client {
	return sc.GmailClientForAccount("default")
}

// SetGmailClientForAccount sets the Gmail client for a specific account
func (sc *ServerContext) SetGmailClientForAccount(account string, client *gmail.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.gmailClients[account] = client
}

// SetGmailClient sets the Gmail client for the default account
func (sc *ServerContext) SetGmailClient(client *gmail.Client) {
	sc.SetGmailClientForAccount("default", client)
}

// Generator returns the text-generation gateway, or nil if none is configured
func (sc *ServerContext) Generator() genai.Generator {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.generator
}

// SetGenerator sets the text-generation gateway
func (sc *ServerContext) SetGenerator(generator genai.Generator) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.generator = generator
}

// SetInstrumentationProvider attaches the observability provider
func (sc *ServerContext) SetInstrumentationProvider(provider *instrumentation.Provider) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.provider = provider
}

// InstrumentationProvider returns the observability provider, or nil
func (sc *ServerContext) InstrumentationProvider() *instrumentation.Provider {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.provider
}

// SetMetrics sets the metrics recorder directly, overriding the provider's
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil when instrumentation is off
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.metrics != nil {
		return sc.metrics
	}
	if sc.provider == nil {
		return nil
	}
	return sc.provider.Metrics()
}

// SetAuditLogger attaches the audit logger
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// AuditLogger returns the audit logger, or nil when audit logging is off
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}

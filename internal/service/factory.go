package service

import (
	"fieldpro.app/relay/core/config"
	"fieldpro.app/relay/internal/queue"
	"fieldpro.app/relay/internal/ratelimit"
	"fieldpro.app/relay/internal/store"
)

type Services struct {
	stores     *store.Stores
	txRunner   TxRunner
	producer   queue.Producer
	limiter    ratelimit.Limiter
	identity   IdentityProvider
	gatewayCfg config.GatewayConfig
}

// NewServices wires services over shared stores. producer may be nil, in which
// case webhook deliveries are recorded but never queued.
func NewServices(stores *store.Stores, txRunner TxRunner, producer queue.Producer, cfg config.Config) *Services {
	return &Services{
		stores:     stores,
		txRunner:   txRunner,
		producer:   producer,
		limiter:    ratelimit.NewPostgresLimiter(stores.Queries(), cfg.Gateway.RateLimit, cfg.Gateway.RateWindow),
		identity:   NewWorkOSProvider(cfg.WorkOS),
		gatewayCfg: cfg.Gateway,
	}
}

func (s *Services) Publisher() Publisher {
	return NewPublisher(s.stores.WebhookEndpoints(), s.stores.WebhookDeliveries(), s.producer)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.stores.Organizations(), s.stores.Memberships())
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores.Organizations(), s.stores.Users(), s.stores.Memberships(), s.txRunner)
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.identity,
		s.stores.Users(),
		s.stores.Sessions(),
		s.stores.Organizations(),
		s.Organizations(),
	)
}

func (s *Services) Contacts() ContactService {
	return NewContactService(s.stores.Contacts(), s.Publisher())
}

func (s *Services) Leads() LeadService {
	return NewLeadService(s.stores.Leads(), s.txRunner, s.Publisher())
}

func (s *Services) Jobs() JobService {
	return NewJobService(s.stores.Jobs(), s.stores.Contacts(), s.Publisher())
}

func (s *Services) Quotes() QuoteService {
	return NewQuoteService(s.stores.Quotes(), s.stores.Contacts(), s.txRunner, s.Publisher())
}

func (s *Services) Invoices() InvoiceService {
	return NewInvoiceService(s.stores.Invoices(), s.stores.Contacts(), s.Publisher())
}

func (s *Services) Tasks() TaskService {
	return NewTaskService(s.stores.Tasks(), s.stores.Memberships())
}

func (s *Services) Events() EventService {
	return NewEventService(s.stores.Events(), s.Publisher())
}

func (s *Services) APIKeys() APIKeyService {
	return NewAPIKeyService(s.stores.APIKeys(), s.txRunner)
}

func (s *Services) Features() FeatureService {
	return NewFeatureService(s.stores.FeatureFlags(), s.stores.Organizations())
}

func (s *Services) Widgets() WidgetService {
	return NewWidgetService(s.stores.ChatWidgets(), s.stores.Organizations(), s.Features())
}

func (s *Services) Webhooks() WebhookService {
	return NewWebhookService(s.stores.WebhookEndpoints(), s.stores.WebhookDeliveries(), s.Publisher())
}

func (s *Services) Gateway() GatewayService {
	return NewGatewayService(
		s.stores.APIKeys(),
		s.stores.Organizations(),
		s.Features(),
		s.limiter,
		s.Contacts(),
		s.Events(),
		GatewayConfig{TimestampTolerance: s.gatewayCfg.TimestampTolerance},
	)
}

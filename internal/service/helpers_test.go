package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printpay/internal/repository"
	"printpay/internal/store"
	"printpay/pkg/idgen"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type sentPush struct {
	token string
	title string
	data  map[string]string
}

type fakePusher struct {
	mu   sync.Mutex
	sent []sentPush
}

func (p *fakePusher) Send(_ context.Context, token, title, _ string, data map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, sentPush{token: token, title: title, data: data})
	return nil
}

type fixture struct {
	store    *store.MemoryStore
	orders   *repository.OrderRepository
	payments *repository.PaymentRepository
	resolver *OrderResolver
	recorder *PaymentRecorder
	sink     *UnmatchedSink
	updater  *OrderStatusUpdater
	pusher   *fakePusher
	svc      *ReconcileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	ids, err := idgen.New(1)
	require.NoError(t, err)

	f := &fixture{store: store.NewMemoryStore(), pusher: &fakePusher{}}
	f.orders = repository.NewOrderRepository(f.store)
	f.payments = repository.NewPaymentRepository(f.store)
	unmatched := repository.NewUnmatchedPaymentRepository(f.store)
	users := repository.NewUserRepository(f.store)

	f.resolver = NewOrderResolver(f.orders, f.payments, ResolverConfig{OrderIDPrefix: "ORD", OrderIDMinLength: 15}, logger)
	f.recorder = NewPaymentRecorder(f.payments, ids, "toyyibpay")
	f.recorder.now = func() time.Time { return fixedNow }
	f.sink = NewUnmatchedSink(unmatched, ids, logger)
	f.sink.now = func() time.Time { return fixedNow }
	f.updater = NewOrderStatusUpdater(f.orders, f.store, logger)
	f.updater.now = func() time.Time { return fixedNow }
	f.svc = NewReconcileService(ReconcileDeps{
		Store:    f.store,
		Resolver: f.resolver,
		Recorder: f.recorder,
		Sink:     f.sink,
		Updater:  f.updater,
		Notifier: NewNotificationService(users, f.pusher, logger),
		Logger:   logger,
	})
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) seed(t *testing.T, collection, id string, doc store.Document) {
	t.Helper()
	require.NoError(t, f.store.Set(context.Background(), collection, id, doc))
}

func (f *fixture) get(t *testing.T, collection, id string) store.Document {
	t.Helper()
	doc, err := f.store.Get(context.Background(), collection, id)
	require.NoError(t, err)
	return doc
}

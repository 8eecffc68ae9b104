package firestore

import (
	"context"
	"fmt"
	"time"

	firestoreapi "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/owennam/JSHA-master-sub000/internal/config"
	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
	"github.com/owennam/JSHA-master-sub000/internal/domain/repository"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

// LiveAdapter reads the mutable order documents, laid out per customer
// as users/{userId}/orders/{orderId}, via one collection-group query.
// It also carries the merge-patch capability the correction write-back
// uses.
type LiveAdapter struct {
	client           *firestoreapi.Client
	usersCollection  string
	ordersCollection string
	diag             repository.DiagnosticsPublisher
	log              logger.Logger
}

func NewLiveAdapter(
	ctx context.Context,
	cfg config.FirestoreConfig,
	diag repository.DiagnosticsPublisher,
	log logger.Logger,
) (*LiveAdapter, error) {
	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestoreapi.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	if diag == nil {
		diag = repository.NopDiagnostics{}
	}
	return &LiveAdapter{
		client:           client,
		usersCollection:  cfg.UsersCollection,
		ordersCollection: cfg.OrdersCollection,
		diag:             diag,
		log:              log,
	}, nil
}

// orderDoc mirrors one live order document.
type orderDoc struct {
	OrderID           string `firestore:"orderId"`
	CreatedAt         string `firestore:"createdAt"`
	ProductName       string `firestore:"productName"`
	CustomerName      string `firestore:"customerName"`
	CustomerEmail     string `firestore:"customerEmail"`
	CustomerPhone     string `firestore:"customerPhone"`
	Address           string `firestore:"address"`
	AddressDetail     string `firestore:"addressDetail"`
	PostalCode        string `firestore:"postalCode"`
	Amount            int64  `firestore:"amount"`
	PaymentMethod     string `firestore:"paymentMethod"`
	PaymentKey        string `firestore:"paymentKey"`
	Status            string `firestore:"status"`
	ApprovedAt        string `firestore:"approvedAt"`
	CancelRequestedAt string `firestore:"cancelRequestedAt"`
	CanceledAt        string `firestore:"canceledAt"`
	CancelReason      string `firestore:"cancelReason"`
}

// FetchAll reads every order document across all customer partitions.
// Documents that cannot be decoded or carry no order id are dropped and
// counted.
func (a *LiveAdapter) FetchAll(ctx context.Context) ([]domain.Record, error) {
	iter := a.client.CollectionGroup(a.ordersCollection).Documents(ctx)
	defer iter.Stop()

	var records []domain.Record
	dropped := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read live orders: %v: %w", err, domain.ErrSourceUnavailable)
		}

		var d orderDoc
		if err := doc.DataTo(&d); err != nil {
			dropped++
			continue
		}
		orderID := d.OrderID
		if orderID == "" {
			// Older documents rely on the document id being the order id.
			orderID = doc.Ref.ID
		}
		if orderID == "" {
			dropped++
			continue
		}
		records = append(records, d.toRecord(orderID, userIDOf(doc.Ref)))
	}

	if dropped > 0 {
		a.log.Warn("dropped undecodable live order documents",
			logger.Int("count", dropped))
		a.diag.Publish(ctx, domain.Diagnostic{
			EventType:  domain.EventMalformedRecord,
			Source:     domain.SourceLive,
			Detail:     fmt.Sprintf("%d documents dropped", dropped),
			ObservedAt: time.Now().UTC(),
		})
	}
	return records, nil
}

// MergePatch writes the given fields into one order document without
// touching the rest of it.
func (a *LiveAdapter) MergePatch(ctx context.Context, userID, orderID string, fields map[string]interface{}) error {
	if userID == "" || orderID == "" {
		return domain.ErrMissingOrderID
	}
	_, err := a.client.
		Collection(a.usersCollection).Doc(userID).
		Collection(a.ordersCollection).Doc(orderID).
		Set(ctx, fields, firestoreapi.MergeAll)
	if err != nil {
		return fmt.Errorf("merge-patch order %s for user %s: %w", orderID, userID, err)
	}
	return nil
}

func (a *LiveAdapter) Close() error {
	return a.client.Close()
}

func (d orderDoc) toRecord(orderID, userID string) domain.Record {
	return domain.Record{
		OrderID:           orderID,
		CreatedAt:         d.CreatedAt,
		ProductName:       d.ProductName,
		CustomerName:      d.CustomerName,
		CustomerEmail:     d.CustomerEmail,
		CustomerPhone:     d.CustomerPhone,
		Address:           d.Address,
		AddressDetail:     d.AddressDetail,
		PostalCode:        d.PostalCode,
		Amount:            d.Amount,
		PaymentMethod:     d.PaymentMethod,
		PaymentKey:        d.PaymentKey,
		Status:            domain.NormalizeStatus(d.Status),
		ApprovedAt:        d.ApprovedAt,
		CancelRequestedAt: d.CancelRequestedAt,
		CanceledAt:        d.CanceledAt,
		CancelReason:      d.CancelReason,
		UserID:            userID,
		Source:            domain.SourceLive,
	}
}

// userIDOf walks up from users/{userId}/orders/{orderId} to the user
// document id. Documents outside that layout yield an empty id.
func userIDOf(ref *firestoreapi.DocumentRef) string {
	if ref == nil || ref.Parent == nil || ref.Parent.Parent == nil {
		return ""
	}
	return ref.Parent.Parent.ID
}

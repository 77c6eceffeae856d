package order

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starlines/starlines/pkg/ctbs"
	"github.com/starlines/starlines/pkg/database"
)

const reservationsCollection = "reservations"

// Store persists reservations so the monitor and support tooling can find
// them after a restart.
type Store struct {
	collection *mongo.Collection
}

func NewStore() *Store {
	return &Store{collection: database.GetCollection(reservationsCollection)}
}

func (s *Store) Save(ctx context.Context, reservation *ctbs.ReservationInfo) error {
	filter := bson.M{"order_id": reservation.OrderID}

	_, err := s.collection.ReplaceOne(ctx, filter, reservation, options.Replace().SetUpsert(true))
	return err
}

func (s *Store) UpdateStatus(ctx context.Context, orderID string, status ctbs.OrderStatus) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"order_id": orderID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	return err
}

func (s *Store) Get(ctx context.Context, orderID string) (*ctbs.ReservationInfo, error) {
	var reservation ctbs.ReservationInfo
	if err := s.collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&reservation); err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Active returns reservations that have not reached a terminal status,
// newest first.
func (s *Store) Active(ctx context.Context) ([]ctbs.ReservationInfo, error) {
	terminal := []ctbs.OrderStatus{
		ctbs.OrderStatusBuy, ctbs.OrderStatusBuyOK, ctbs.OrderStatusPaid,
		ctbs.OrderStatusCancel, ctbs.OrderStatusExpired,
	}

	cursor, err := s.collection.Find(ctx,
		bson.M{"status": bson.M{"$nin": terminal}},
		options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []ctbs.ReservationInfo
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

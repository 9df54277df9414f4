package catalog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/firegrid/firegrid/pkg/errors"
)

// Collection names used by the Mongo catalog store.
const (
	collDevices = "device_specs"
	collWires   = "wire_specs"
	collRules   = "nfpa_rules"
)

// MongoStore loads a shared catalog from MongoDB. Deployments with several
// design workstations keep one catalog database and load it at startup; the
// engine itself never writes to it during a design session.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore creates a store over the given database.
func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	return &MongoStore{db: client.Database(dbName)}
}

// Connect dials a MongoDB deployment and returns a store over dbName.
// The caller owns the returned client and must disconnect it.
func Connect(ctx context.Context, uri, dbName string) (*MongoStore, *mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to catalog store")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, errors.Wrap(errors.ErrCodeStorage, err, "ping catalog store")
	}
	return NewMongoStore(client, dbName), client, nil
}

// Load reads the three catalog collections and assembles a Catalog.
func (s *MongoStore) Load(ctx context.Context) (*Catalog, error) {
	var devices []DeviceSpecification
	if err := s.loadAll(ctx, collDevices, &devices); err != nil {
		return nil, err
	}
	var wires []WireSpecification
	if err := s.loadAll(ctx, collWires, &wires); err != nil {
		return nil, err
	}
	var rules []NFPARule
	if err := s.loadAll(ctx, collRules, &rules); err != nil {
		return nil, err
	}
	return New(devices, wires, rules), nil
}

// Seed writes the given catalog into the store, replacing existing entries
// that share a key. Used by the CLI to publish a TOML catalog to a shared
// deployment.
func (s *MongoStore) Seed(ctx context.Context, c *Catalog) error {
	for _, d := range c.Devices() {
		filter := bson.M{"model": d.Model}
		opts := options.Replace().SetUpsert(true)
		if _, err := s.db.Collection(collDevices).ReplaceOne(ctx, filter, d, opts); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "seed device %s", d.Model)
		}
	}
	for _, w := range c.Wires() {
		filter := bson.M{"gauge": w.GaugeAWG}
		opts := options.Replace().SetUpsert(true)
		if _, err := s.db.Collection(collWires).ReplaceOne(ctx, filter, w, opts); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "seed wire %d AWG", w.GaugeAWG)
		}
	}
	for _, r := range c.Rules() {
		filter := bson.M{"id": r.ID}
		opts := options.Replace().SetUpsert(true)
		if _, err := s.db.Collection(collRules).ReplaceOne(ctx, filter, r, opts); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "seed rule %s", r.ID)
		}
	}
	return nil
}

func (s *MongoStore) loadAll(ctx context.Context, coll string, out any) error {
	cur, err := s.db.Collection(coll).Find(ctx, bson.M{})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "query %s", coll)
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, out); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "decode %s", coll)
	}
	return nil
}

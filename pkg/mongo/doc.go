// Package mongo manages the MongoDB connection used by the API.
//
// Configuration comes from the environment (DATABASE_URL, DATABASE_NAME and
// the MONGODB_* pool settings). New retries the initial connection a few
// times before giving up, which covers databases that start slower than the
// API container.
//
//	db, err := mongo.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer mongo.Close(context.Background(), db)
//
// Healthcheck returns a ping function for readiness probes. EnsureUniqueIndex
// and IsDuplicateKey back store-level uniqueness constraints.
package mongo

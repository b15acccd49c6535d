package dataaccess

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB is the Mongo client. This is a connection pool. It is nil when no
// Mongo URI was configured; the ticket archive is disabled in that case.
var MongoDB *mongo.Client

const mongoDatabase = "doorkeep"

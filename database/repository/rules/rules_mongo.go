package rulesRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/config"
	"slotwise/database"
	"slotwise/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRuleRepo implements RuleRepository using MongoDB.
type MongoRuleRepo struct {
	settingsColl *mongo.Collection
	serviceColl  *mongo.Collection
}

// NewMongoRuleRepo constructs a new instance of MongoRuleRepo.
func NewMongoRuleRepo() RuleRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoRuleRepo{
		settingsColl: db.Collection("scheduling_settings"),
		serviceColl:  db.Collection("service_rules"),
	}
}

// GetGlobalLayer fetches the singleton global settings document. Fields the
// document leaves unset are filled from configured defaults; if the layer is
// still incomplete afterwards, that is a system error.
func (repo *MongoRuleRepo) GetGlobalLayer(ctx context.Context) (models.RuleLayer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var layer models.RuleLayer
	err := repo.settingsColl.FindOne(ctx, bson.M{"scope": "global"}).Decode(&layer)
	if err != nil && err != mongo.ErrNoDocuments {
		return models.RuleLayer{}, fmt.Errorf("error fetching global settings: %w", err)
	}

	if layer.StaffCapacity == nil {
		capacity := config.AppConfig.DefaultStaffCapacity
		layer.StaffCapacity = &capacity
	}
	if len(layer.WorkingSlots) == 0 {
		layer.WorkingSlots = config.DefaultWorkingSlotList()
	}

	if *layer.StaffCapacity < 0 || len(layer.WorkingSlots) == 0 {
		return models.RuleLayer{}, fmt.Errorf("global settings incomplete: capacity or working slots missing")
	}
	return layer, nil
}

// GetServiceLayer fetches the rule layer for a service (branch-specific
// document first, falling back to the service-wide one). A missing document
// is not an error; it simply means no overrides.
func (repo *MongoRuleRepo) GetServiceLayer(ctx context.Context, service, branchID string) (models.RuleLayer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var layer models.RuleLayer
	if branchID != "" {
		err := repo.serviceColl.FindOne(ctx, bson.M{"service": service, "branchId": branchID}).Decode(&layer)
		if err == nil {
			return layer, nil
		}
		if err != mongo.ErrNoDocuments {
			return models.RuleLayer{}, fmt.Errorf("error fetching branch rules for %s: %w", service, err)
		}
	}

	err := repo.serviceColl.FindOne(ctx, bson.M{"service": service, "branchId": bson.M{"$in": bson.A{nil, ""}}}).Decode(&layer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.RuleLayer{}, nil
		}
		return models.RuleLayer{}, fmt.Errorf("error fetching service rules for %s: %w", service, err)
	}
	return layer, nil
}

package storage

import (
	"context"
	"fmt"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/sirupsen/logrus"
)

type Neo4jStorage struct {
	Driver neo4j.DriverWithContext
}

func NewNeo4jStorage(uri, username, password string) (*Neo4jStorage, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("connect to driver: %w", err)
	}
	return &Neo4jStorage{Driver: driver}, nil
}

func (s *Neo4jStorage) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

// SaveFriends сохраняет друзей цели и их города: (:User)-[:FRIEND]->(:User),
// (:User)-[:LIVES_IN]->(:City) и (:User)-[:COMES_FROM]->(:City).
// places содержит уже нормализованные названия в том же порядке, что и friends.
func (s *Neo4jStorage) SaveFriends(ctx context.Context, targetID int, friends []models.Friend, places models.Places) error {
	if len(friends) != places.Len() {
		return fmt.Errorf("save friends: %d friends but %d places", len(friends), places.Len())
	}

	session := s.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer func(session neo4j.SessionWithContext, ctx context.Context) {
		err := session.Close(ctx)
		if err != nil {
			logrus.Warnf("close session: %v", err)
		}
	}(session, ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		if _, err := tx.Run(ctx, saveTargetQuery, map[string]any{"id": targetID}); err != nil {
			return nil, fmt.Errorf("save target %d: %w", targetID, err)
		}
		for i, friend := range friends {
			_, err := tx.Run(ctx, saveFriendQuery, map[string]any{
				"target_id":     targetID,
				"id":            friend.ID,
				"raw_city":      friend.City,
				"raw_home_town": friend.HomeTown,
				"city":          places.Cities[i],
				"home_town":     places.HomeTowns[i],
			})
			if err != nil {
				return nil, fmt.Errorf("save friend %d: %w", friend.ID, err)
			}
		}
		return nil, nil
	})
	if err != nil {
		logrus.Errorf("save friends of %d: %v", targetID, err)
		return err
	}
	return nil
}

func (s *Neo4jStorage) RunQuery(ctx context.Context, queryName string) ([]map[string]interface{}, error) {
	query, exists := neo4jQueries[queryName]
	if !exists {
		return nil, fmt.Errorf("query %s not found", queryName)
	}

	session := s.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer func(session neo4j.SessionWithContext, ctx context.Context) {
		err := session.Close(ctx)
		if err != nil {
			logrus.Warnf("close session: %v", err)
		}
	}(session, ctx)

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for result.Next(ctx) {
		results = append(results, result.Record().AsMap())
	}

	if err = result.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (s *Neo4jStorage) Ping(ctx context.Context) error {
	if err := s.Driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("ping neo4j: %w", err)
	}
	return nil
}

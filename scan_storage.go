package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"aamva-parser/document/aamva"

	"github.com/redis/go-redis/v9"
)

// Should be safe to use in concurrency
type ScanStorage interface {
	// Store the parsed record under the given scan id.
	// Storing an id that already exists overwrites it.
	StoreScan(scanId string, record aamva.Record) error

	// Retrieve the record for the scan id, an unknown id is an error.
	RetrieveScan(scanId string) (aamva.Record, error)

	// Remove the record. The record not being there is also an error.
	RemoveScan(scanId string) error
}

type InMemoryScanStorage struct {
	ScanMap map[string]aamva.Record
	mutex   sync.Mutex
}

func NewInMemoryScanStorage() *InMemoryScanStorage {
	return &InMemoryScanStorage{
		ScanMap: make(map[string]aamva.Record),
	}
}

type RedisScanStorage struct {
	client    *redis.Client
	namespace string
}

func NewRedisScanStorage(client *redis.Client, namespace string) *RedisScanStorage {
	return &RedisScanStorage{client: client, namespace: namespace}
}

// ------------------------------------------------------------------------------

func createKey(namespace, scanId string) string {
	return fmt.Sprintf("%s:scan:%s", namespace, scanId)
}

// ScanTimeout bounds how long a parsed record stays retrievable
const ScanTimeout time.Duration = time.Hour

func (s *RedisScanStorage) StoreScan(scanId string, record aamva.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode scan %s: %w", scanId, err)
	}
	ctx := context.Background()
	return s.client.Set(ctx, createKey(s.namespace, scanId), payload, ScanTimeout).Err()
}

func (s *RedisScanStorage) RetrieveScan(scanId string) (aamva.Record, error) {
	ctx := context.Background()
	payload, err := s.client.Get(ctx, createKey(s.namespace, scanId)).Bytes()
	if err != nil {
		return aamva.Record{}, fmt.Errorf("failed to find scan %s: %w", scanId, err)
	}

	var record aamva.Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return aamva.Record{}, fmt.Errorf("failed to decode scan %s: %w", scanId, err)
	}
	return record, nil
}

func (s *RedisScanStorage) RemoveScan(scanId string) error {
	ctx := context.Background()
	removed, err := s.client.Del(ctx, createKey(s.namespace, scanId)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("failed to remove scan %s, because it wasn't there", scanId)
	}
	return nil
}

// ------------------------------------------------------------------------------

func (s *InMemoryScanStorage) StoreScan(scanId string, record aamva.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.ScanMap[scanId] = record
	return nil
}

func (s *InMemoryScanStorage) RetrieveScan(scanId string) (aamva.Record, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if record, ok := s.ScanMap[scanId]; ok {
		return record, nil
	}
	return aamva.Record{}, fmt.Errorf("failed to find scan %s", scanId)
}

func (s *InMemoryScanStorage) RemoveScan(scanId string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.ScanMap[scanId]; !ok {
		return fmt.Errorf("failed to remove scan %s, because it wasn't there", scanId)
	}
	delete(s.ScanMap, scanId)
	return nil
}

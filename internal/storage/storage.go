// Package storage keeps per-guild bot records (command history and disabled
// command groups) in a JSON-file datastore. Sounds themselves never live
// here; the filesystem catalog is their only home.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/keshon/datastore"
)

const commandHistoryLimit = 20

type Storage struct {
	ds *datastore.DataStore
}

type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Datetime  time.Time `json:"datetime"`
}

// Record is everything stored for one guild.
type Record struct {
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history"`
	CommandsDisabled    []string               `json:"cmd_disabled"`
}

func New(ctx context.Context, filePath string) (*Storage, error) {
	ds, err := datastore.New(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// getGuildRecord decodes the guild's record; a guild with no record yet
// yields the zero Record, which only becomes persistent on the first write.
func (s *Storage) getGuildRecord(guildID string) (*Record, error) {
	var record Record
	if _, err := s.ds.Get(guildID, &record); err != nil {
		return nil, fmt.Errorf("error reading guild record: %w", err)
	}
	return &record, nil
}

// AddCommandHistory appends to the guild's bounded command log.
func (s *Storage) AddCommandHistory(guildID string, entry CommandHistoryRecord) error {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistoryList = append(record.CommandsHistoryList, entry)
	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}

	return s.ds.Set(guildID, record)
}

// GetCommandHistory returns the guild's recent command invocations.
func (s *Storage) GetCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}

// DisableGroup turns off a command group for the guild.
func (s *Storage) DisableGroup(guildID, group string) error {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}

	for _, g := range record.CommandsDisabled {
		if g == group {
			return nil
		}
	}

	record.CommandsDisabled = append(record.CommandsDisabled, group)
	return s.ds.Set(guildID, record)
}

// EnableGroup turns a command group back on.
func (s *Storage) EnableGroup(guildID, group string) error {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return err
	}

	updated := make([]string, 0, len(record.CommandsDisabled))
	for _, g := range record.CommandsDisabled {
		if g != group {
			updated = append(updated, g)
		}
	}
	record.CommandsDisabled = updated
	return s.ds.Set(guildID, record)
}

func (s *Storage) IsGroupDisabled(guildID, group string) (bool, error) {
	record, err := s.getGuildRecord(guildID)
	if err != nil {
		return false, err
	}
	for _, g := range record.CommandsDisabled {
		if g == group {
			return true, nil
		}
	}
	return false, nil
}

package storage

import (
    "fmt"

    "github.com/pocketbase/dbx"
    "github.com/pocketbase/pocketbase/core"
    pbModels "github.com/pocketbase/pocketbase/models"
    "github.com/pocketbase/pocketbase/models/schema"

    "legislativo/internal/models"
)

// BuildsCollection stores the dashboard build history
const BuildsCollection = "dashboard_builds"

// BuildStore keeps the build history in a PocketBase collection
type BuildStore struct {
    app core.App
}

// NewBuildStore wraps a bootstrapped app and makes sure the collection exists
func NewBuildStore(app core.App) (*BuildStore, error) {
    if err := ensureCollection(app); err != nil {
        return nil, fmt.Errorf("failed to ensure collection exists: %w", err)
    }
    return &BuildStore{app: app}, nil
}

func ensureCollection(app core.App) error {
    if _, err := app.Dao().FindCollectionByNameOrId(BuildsCollection); err == nil {
        return nil
    }

    collection := &pbModels.Collection{
        Name: BuildsCollection,
        Type: pbModels.CollectionTypeBase,
        Schema: schema.NewSchema(
            &schema.SchemaField{
                Name:    "snapshot_id",
                Type:    schema.FieldTypeText,
                Options: &schema.TextOptions{},
            },
            &schema.SchemaField{
                Name:     "status",
                Type:     schema.FieldTypeSelect,
                Required: true,
                Options: &schema.SelectOptions{
                    MaxSelect: 1,
                    Values:    []string{string(models.BuildStatusOK), string(models.BuildStatusFailed)},
                },
            },
            &schema.SchemaField{
                Name:    "records",
                Type:    schema.FieldTypeNumber,
                Options: &schema.NumberOptions{NoDecimal: true},
            },
            &schema.SchemaField{
                Name:    "approved",
                Type:    schema.FieldTypeNumber,
                Options: &schema.NumberOptions{NoDecimal: true},
            },
            &schema.SchemaField{
                Name:    "last_updated",
                Type:    schema.FieldTypeText,
                Options: &schema.TextOptions{},
            },
            &schema.SchemaField{
                Name:    "message",
                Type:    schema.FieldTypeText,
                Options: &schema.TextOptions{},
            },
        ),
    }

    if err := app.Dao().SaveCollection(collection); err != nil {
        return fmt.Errorf("failed to save collection: %w", err)
    }
    return nil
}

// SaveBuild appends a build to the history and fills in its id
func (s *BuildStore) SaveBuild(build *models.BuildRecord) error {
    if err := build.Validate(); err != nil {
        return err
    }

    collection, err := s.app.Dao().FindCollectionByNameOrId(BuildsCollection)
    if err != nil {
        return fmt.Errorf("failed to find collection: %w", err)
    }

    record := pbModels.NewRecord(collection)
    record.Set("snapshot_id", build.SnapshotID)
    record.Set("status", string(build.Status))
    record.Set("records", build.Records)
    record.Set("approved", build.Approved)
    record.Set("last_updated", build.LastUpdated)
    record.Set("message", build.Message)

    if err := s.app.Dao().SaveRecord(record); err != nil {
        return fmt.Errorf("failed to save record: %w", err)
    }

    build.ID = record.Id
    build.Created = record.Created.String()
    return nil
}

// RecentBuilds returns up to limit builds, newest first
func (s *BuildStore) RecentBuilds(limit int) ([]models.BuildRecord, error) {
    return s.findBuilds(nil, limit)
}

// LastSuccessful returns the newest successful build
func (s *BuildStore) LastSuccessful() (*models.BuildRecord, error) {
    builds, err := s.findBuilds(dbx.HashExp{"status": string(models.BuildStatusOK)}, 1)
    if err != nil {
        return nil, err
    }
    if len(builds) == 0 {
        return nil, fmt.Errorf("no successful build recorded")
    }
    return &builds[0], nil
}

func (s *BuildStore) findBuilds(where dbx.Expression, limit int) ([]models.BuildRecord, error) {
    query := s.app.Dao().RecordQuery(BuildsCollection).
        OrderBy("created DESC", "rowid DESC").
        Limit(int64(limit))
    if where != nil {
        query.AndWhere(where)
    }

    var records []*pbModels.Record
    if err := query.All(&records); err != nil {
        return nil, fmt.Errorf("failed to fetch builds: %w", err)
    }

    builds := make([]models.BuildRecord, len(records))
    for i, record := range records {
        builds[i] = models.BuildRecord{
            ID:          record.Id,
            SnapshotID:  record.GetString("snapshot_id"),
            Status:      models.BuildStatus(record.GetString("status")),
            Records:     record.GetInt("records"),
            Approved:    record.GetInt("approved"),
            LastUpdated: record.GetString("last_updated"),
            Message:     record.GetString("message"),
            Created:     record.Created.String(),
        }
    }
    return builds, nil
}

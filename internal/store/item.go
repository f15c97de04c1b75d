package store

import (
	"context"
	"fmt"

	"bucketlist-service/internal/database"
	"bucketlist-service/internal/model"
)

func CreateItem(ctx context.Context, db database.DB, item *model.BucketlistItem) (*model.BucketlistItem, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO bucketlist_items (name, bucketlist_id)
		 VALUES ($1, $2)
		 RETURNING id, done, date_created, date_modified`,
		item.Name,
		item.BucketlistID,
	)
	if err := row.Scan(&item.ID, &item.Done, &item.DateCreated, &item.DateModified); err != nil {
		return nil, fmt.Errorf("CreateItem: %w", err)
	}
	return item, nil
}

func GetItemByID(ctx context.Context, db database.DB, itemID int) (*model.BucketlistItem, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, done, bucketlist_id, date_created, date_modified
		 FROM bucketlist_items WHERE id = $1`,
		itemID,
	)
	item := &model.BucketlistItem{}
	if err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Done,
		&item.BucketlistID,
		&item.DateCreated,
		&item.DateModified,
	); err != nil {
		return nil, fmt.Errorf("GetItemByID: %w", err)
	}
	return item, nil
}

func ListItemsByBucketlist(ctx context.Context, db database.DB, bucketlistID int) ([]model.BucketlistItem, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, done, bucketlist_id, date_created, date_modified
		 FROM bucketlist_items
		 WHERE bucketlist_id = $1
		 ORDER BY id`,
		bucketlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListItemsByBucketlist: %w", err)
	}
	defer rows.Close()

	items := []model.BucketlistItem{}
	for rows.Next() {
		var item model.BucketlistItem
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Done,
			&item.BucketlistID,
			&item.DateCreated,
			&item.DateModified,
		); err != nil {
			return nil, fmt.Errorf("ListItemsByBucketlist: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListItemsByBucketlist: %w", err)
	}
	return items, nil
}

func UpdateItem(ctx context.Context, db database.DB, item *model.BucketlistItem) (*model.BucketlistItem, error) {
	row := db.QueryRow(ctx,
		`UPDATE bucketlist_items
		 SET name = $1, done = $2, date_modified = now()
		 WHERE id = $3
		 RETURNING date_modified`,
		item.Name,
		item.Done,
		item.ID,
	)
	if err := row.Scan(&item.DateModified); err != nil {
		return nil, fmt.Errorf("UpdateItem: %w", err)
	}
	return item, nil
}

func DeleteItem(ctx context.Context, db database.DB, itemID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM bucketlist_items WHERE id = $1`,
		itemID,
	)
	if err != nil {
		return fmt.Errorf("DeleteItem: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"

	"bucketlist-service/internal/database"
	"bucketlist-service/internal/model"
)

func CreateBucketlist(ctx context.Context, db database.DB, b *model.Bucketlist) (*model.Bucketlist, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO bucketlists (name, created_by)
		 VALUES ($1, $2)
		 RETURNING id, date_created, date_modified`,
		b.Name,
		b.CreatedBy,
	)
	if err := row.Scan(&b.ID, &b.DateCreated, &b.DateModified); err != nil {
		return nil, fmt.Errorf("CreateBucketlist: %w", err)
	}
	return b, nil
}

func GetBucketlistByID(ctx context.Context, db database.DB, bucketlistID int) (*model.Bucketlist, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, created_by, date_created, date_modified
		 FROM bucketlists WHERE id = $1`,
		bucketlistID,
	)
	b := &model.Bucketlist{}
	if err := row.Scan(
		&b.ID,
		&b.Name,
		&b.CreatedBy,
		&b.DateCreated,
		&b.DateModified,
	); err != nil {
		return nil, fmt.Errorf("GetBucketlistByID: %w", err)
	}
	return b, nil
}

// ListBucketlists 回傳指定使用者擁有的 bucketlist 分頁
// q 非空時以名稱做不分大小寫子字串過濾，並載入每個 bucketlist 的項目
func ListBucketlists(ctx context.Context, db database.DB, ownerID int, q string, page, perPage int) ([]model.Bucketlist, error) {
	offset := (page - 1) * perPage
	rows, err := db.Query(ctx,
		`SELECT id, name, created_by, date_created, date_modified
		 FROM bucketlists
		 WHERE created_by = $1 AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		 ORDER BY id
		 LIMIT $3 OFFSET $4`,
		ownerID,
		q,
		perPage,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("ListBucketlists: %w", err)
	}
	defer rows.Close()

	lists := []model.Bucketlist{}
	for rows.Next() {
		var b model.Bucketlist
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.CreatedBy,
			&b.DateCreated,
			&b.DateModified,
		); err != nil {
			return nil, fmt.Errorf("ListBucketlists: %w", err)
		}
		lists = append(lists, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListBucketlists: %w", err)
	}

	for i := range lists {
		items, err := ListItemsByBucketlist(ctx, db, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
	}
	return lists, nil
}

func UpdateBucketlist(ctx context.Context, db database.DB, bucketlistID int, name string) (*model.Bucketlist, error) {
	row := db.QueryRow(ctx,
		`UPDATE bucketlists
		 SET name = $1, date_modified = now()
		 WHERE id = $2
		 RETURNING id, name, created_by, date_created, date_modified`,
		name,
		bucketlistID,
	)
	b := &model.Bucketlist{}
	if err := row.Scan(
		&b.ID,
		&b.Name,
		&b.CreatedBy,
		&b.DateCreated,
		&b.DateModified,
	); err != nil {
		return nil, fmt.Errorf("UpdateBucketlist: %w", err)
	}
	return b, nil
}

func DeleteBucketlist(ctx context.Context, db database.DB, bucketlistID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM bucketlists WHERE id = $1`,
		bucketlistID,
	)
	if err != nil {
		return fmt.Errorf("DeleteBucketlist: %w", err)
	}
	return nil
}

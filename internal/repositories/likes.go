package repositories

import (
	"context"
	"fmt"

	"github.com/cliptube/backend/internal/db"
	"github.com/cliptube/backend/internal/models"
)

// PostgresLikeRepository provides PostgreSQL-backed persistence for like markers.
type PostgresLikeRepository struct {
	pool db.Pool
}

// NewPostgresLikeRepository constructs a like repository backed by PostgreSQL.
func NewPostgresLikeRepository(pool db.Pool) *PostgresLikeRepository {
	return &PostgresLikeRepository{pool: pool}
}

func targetColumn(kind models.LikeTargetKind) (string, error) {
	switch kind {
	case models.LikeTargetVideo:
		return "video_id", nil
	case models.LikeTargetComment:
		return "comment_id", nil
	case models.LikeTargetTweet:
		return "tweet_id", nil
	default:
		return "", fmt.Errorf("unknown like target kind %q", kind)
	}
}

// Toggle flips the like state for the (likedBy, target) pair and reports the
// resulting state: true when the like now exists, false when it was removed.
// The insert leans on the partial unique index, so two racing toggles cannot
// both create a row; the loser of the race falls through to the delete.
func (r *PostgresLikeRepository) Toggle(ctx context.Context, like models.Like) (bool, error) {
	column, err := targetColumn(like.Target.Kind)
	if err != nil {
		return false, err
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, fmt.Sprintf(`
        INSERT INTO likes (id, %[1]s, liked_by, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (liked_by, %[1]s) WHERE %[1]s IS NOT NULL DO NOTHING
    `, column), like.ID, like.Target.ID, like.LikedBy, like.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert like: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	if _, err := conn.Exec(ctx, fmt.Sprintf(`
        DELETE FROM likes WHERE liked_by = $1 AND %s = $2
    `, column), like.LikedBy, like.Target.ID); err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}

	return false, nil
}

// LikedVideos returns the videos the user has liked, most recent like first,
// each joined to its owner's public fields.
func (r *PostgresLikeRepository) LikedVideos(ctx context.Context, userID string) ([]models.VideoWithOwner, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT `+videoWithOwnerColumns+`
        FROM likes l
        JOIN videos v ON v.id = l.video_id
        JOIN users o ON o.id = v.owner_id
        WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
        ORDER BY l.created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("query liked videos: %w", err)
	}
	defer rows.Close()

	return collectVideosWithOwner(rows)
}

var _ LikeRepository = (*PostgresLikeRepository)(nil)

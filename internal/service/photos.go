package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/saadjs/gymbro/internal/model"
)

const progressPhotoBucket = "progress_photos"

// UploadProgressPhoto stores a photo under <user id>/<unix ms>-<name> and
// returns the refreshed list. Photos exist only in the remote tier.
func UploadProgressPhoto(ctx context.Context, s Session, name string, body io.Reader, now time.Time) ([]model.ProgressPhoto, error) {
	client, ok := s.useRemote()
	if !ok {
		return nil, ErrRemoteRequired
	}
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("photo file name is required")
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(base)))
	path := fmt.Sprintf("%s/%d-%s", s.Profile.ID, now.UnixMilli(), base)
	if err := client.Upload(ctx, progressPhotoBucket, path, contentType, body); err != nil {
		s.Logger.Error().Err(err).Str("path", path).Msg("photo upload failed")
		return nil, err
	}
	return ListProgressPhotos(ctx, s)
}

func ListProgressPhotos(ctx context.Context, s Session) ([]model.ProgressPhoto, error) {
	client, ok := s.useRemote()
	if !ok {
		return nil, ErrRemoteRequired
	}
	objects, err := client.List(ctx, progressPhotoBucket, s.Profile.ID)
	if err != nil {
		s.Logger.Error().Err(err).Msg("photo listing failed")
		return nil, err
	}
	out := make([]model.ProgressPhoto, 0, len(objects))
	for _, o := range objects {
		path := s.Profile.ID + "/" + o.Name
		out = append(out, model.ProgressPhoto{
			Name:      o.Name,
			Path:      path,
			URL:       client.PublicURL(progressPhotoBucket, path),
			CreatedAt: o.CreatedAt,
		})
	}
	return out, nil
}

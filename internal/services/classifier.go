package services

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"github.com/you/assetsvc/domain"
)

const genericMediaType = "application/octet-stream"

type extensionTable struct {
	category domain.AssetCategory
	types    map[string]string
}

// Checked in order; the first table containing the extension wins
var extensionTables = []extensionTable{
	{domain.CategoryImage, map[string]string{
		"jpg": "image/jpeg", "jpeg": "image/jpeg", "png": "image/png", "gif": "image/gif",
		"webp": "image/webp", "bmp": "image/bmp", "svg": "image/svg+xml",
	}},
	{domain.CategoryVideo, map[string]string{
		"mp4": "video/mp4", "avi": "video/x-msvideo", "mov": "video/quicktime", "mkv": "video/x-matroska",
		"webm": "video/webm", "flv": "video/x-flv", "wmv": "video/x-ms-wmv",
	}},
	{domain.CategoryAudio, map[string]string{
		"mp3": "audio/mpeg", "wav": "audio/wav", "aac": "audio/aac", "flac": "audio/flac",
		"ogg": "audio/ogg", "m4a": "audio/mp4",
	}},
	{domain.CategoryDocument, map[string]string{
		"pdf":  "application/pdf",
		"doc":  "application/msword",
		"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"txt":  "text/plain",
		"xls":  "application/vnd.ms-excel",
		"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"ppt":  "application/vnd.ms-powerpoint",
		"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	}},
}

// AssetClassifierImpl implements domain.AssetClassifier
type AssetClassifierImpl struct {
	host   domain.MediaHost
	logger *slog.Logger
}

// NewAssetClassifier creates a classifier that consults host for non-local references
func NewAssetClassifier(host domain.MediaHost, logger *slog.Logger) domain.AssetClassifier {
	return &AssetClassifierImpl{host: host, logger: logger}
}

// IsLocalReference reports whether ref is a rooted path served by this process (e.g. /uploads/x.png)
func IsLocalReference(ref string) bool {
	return strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//")
}

// Classify never fails; missing metadata degrades to defaults
func (c *AssetClassifierImpl) Classify(ctx context.Context, sourceRef string) domain.Classification {
	sourceRef = strings.TrimSpace(sourceRef)
	if IsLocalReference(sourceRef) {
		return classifyLocal(sourceRef)
	}
	return c.classifyCloud(ctx, sourceRef)
}

func classifyLocal(ref string) domain.Classification {
	p := refPath(ref)
	ext := extension(p)
	for _, table := range extensionTables {
		if mediaType, ok := table.types[ext]; ok {
			return domain.Classification{Category: table.category, MediaType: mediaType, OriginalName: path.Base(p)}
		}
	}
	return domain.Classification{Category: domain.CategoryFile, MediaType: genericMediaType, OriginalName: path.Base(p)}
}

func (c *AssetClassifierImpl) classifyCloud(ctx context.Context, ref string) domain.Classification {
	meta, err := c.host.FetchResourceMetadata(ctx, c.host.ResourceID(ref))
	if err == nil {
		category := domain.CategoryVideo
		if meta.Type == "image" {
			category = domain.CategoryImage
		}
		size := meta.Bytes
		if size < 0 {
			size = 0
		}
		return domain.Classification{Category: category, MediaType: meta.Format, SizeBytes: size}
	}

	c.logger.DebugContext(ctx, "media host lookup failed, classifying by extension", "ref", ref, "error", err)
	if _, ok := videoTypes()[extension(refPath(ref))]; ok {
		return domain.Classification{Category: domain.CategoryVideo}
	}
	return domain.Classification{Category: domain.CategoryImage}
}

func videoTypes() map[string]string {
	for _, t := range extensionTables {
		if t.category == domain.CategoryVideo {
			return t.types
		}
	}
	return nil
}

// refPath drops any query or fragment so "a.mp4?v=1" still reads as mp4
func refPath(ref string) string {
	if u, err := url.Parse(ref); err == nil {
		return u.Path
	}
	return ref
}

func extension(p string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}

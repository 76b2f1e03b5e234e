// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ErrMalformedRecord is returned for candidates that cannot be shown. The
// concrete error is a *RejectError carrying the reason.
var ErrMalformedRecord = errors.New("malformed feed record")

// Rejection reasons, also used as the reason label of the dropped-records metric.
const (
	ReasonMissingImageURL = "missing_image_url"
	ReasonMissingPrompt   = "missing_prompt"
	ReasonPrivate         = "private"
	ReasonNSFW            = "nsfw"
	ReasonChild           = "child"
	ReasonMature          = "mature"
	ReasonDecode          = "decode"
)

const (
	// DefaultStatus is used when a candidate carries no status.
	DefaultStatus = "end_generating"
	// DefaultDimension is used for missing or non-positive width and height.
	DefaultDimension = 1024
	// ThumbnailSize is the long edge of synthesized thumbnails.
	ThumbnailSize = 256

	imageServiceHost = "image.pollinations.ai"
)

// RejectError reports why a candidate was dropped.
type RejectError struct {
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedRecord.Error(), e.Reason)
}

// Unwrap lets errors.Is match ErrMalformedRecord.
func (e *RejectError) Unwrap() error {
	return ErrMalformedRecord
}

// RejectReason extracts the reason from a rejection, or "" for other errors.
func RejectReason(err error) string {
	var re *RejectError
	if errors.As(err, &re) {
		return re.Reason
	}
	if errors.Is(err, ErrMalformedRecord) {
		return ReasonDecode
	}
	return ""
}

func reject(reason string) error {
	return &RejectError{Reason: reason}
}

// Normalize validates a candidate and fills in documented defaults.
//
// A candidate is displayable when it has a non-blank imageURL and prompt and
// none of its nsfw, child, mature, private or nofeed flags are set. The nested
// maturity block counts the same as the top-level flags.
func Normalize(c Candidate) (Record, error) {
	imageURL := strings.TrimSpace(c.ImageURL.Value)
	if imageURL == "" {
		return Record{}, reject(ReasonMissingImageURL)
	}
	prompt := strings.TrimSpace(c.Prompt.Value)
	if prompt == "" {
		return Record{}, reject(ReasonMissingPrompt)
	}
	if c.Private.Set() || c.NoFeed.Set() {
		return Record{}, reject(ReasonPrivate)
	}

	nsfw, child, mature := c.NSFW.Set(), c.IsChild.Set(), c.IsMature.Set()
	if m := c.Maturity; m != nil {
		nsfw = nsfw || m.NSFW.Set()
		child = child || m.IsChild.Set()
		mature = mature || m.IsMature.Set()
	}
	switch {
	case nsfw:
		return Record{}, reject(ReasonNSFW)
	case child:
		return Record{}, reject(ReasonChild)
	case mature:
		return Record{}, reject(ReasonMature)
	}

	rec := Record{
		Width:          dimensionOrDefault(c.Width),
		Height:         dimensionOrDefault(c.Height),
		Seed:           c.Seed.Value,
		Model:          c.Model.Value,
		Enhance:        c.Enhance.Value,
		NoLogo:         c.NoLogo.Value,
		NegativePrompt: c.NegativePrompt.Value,
		Quality:        c.Quality.Value,
		ImageURL:       imageURL,
		ThumbnailURL:   strings.TrimSpace(c.ThumbnailURL.Value),
		Prompt:         c.Prompt.Value,
		Status:         c.Status.Value,
		TimingInfo:     []TimingStep(c.TimingInfo),
	}
	if strings.TrimSpace(rec.Status) == "" {
		rec.Status = DefaultStatus
	}
	if rec.TimingInfo == nil {
		rec.TimingInfo = []TimingStep{}
	}
	if rec.ThumbnailURL == "" {
		rec.ThumbnailURL = ThumbnailURL(rec.ImageURL, rec.Width, rec.Height)
	}
	return rec, nil
}

// Filter re-checks a record that was built without going through Normalize,
// such as a mock record, and fills the same defaults.
func Filter(r Record) (Record, error) {
	if strings.TrimSpace(r.ImageURL) == "" {
		return Record{}, reject(ReasonMissingImageURL)
	}
	if strings.TrimSpace(r.Prompt) == "" {
		return Record{}, reject(ReasonMissingPrompt)
	}
	switch {
	case r.NSFW:
		return Record{}, reject(ReasonNSFW)
	case r.IsChild:
		return Record{}, reject(ReasonChild)
	case r.IsMature:
		return Record{}, reject(ReasonMature)
	}
	if r.Width <= 0 {
		r.Width = DefaultDimension
	}
	if r.Height <= 0 {
		r.Height = DefaultDimension
	}
	if strings.TrimSpace(r.Status) == "" {
		r.Status = DefaultStatus
	}
	if r.TimingInfo == nil {
		r.TimingInfo = []TimingStep{}
	}
	if r.ThumbnailURL == "" {
		r.ThumbnailURL = ThumbnailURL(r.ImageURL, r.Width, r.Height)
	}
	return r, nil
}

// IsDisplayable reports whether a record may be returned to clients.
func IsDisplayable(r Record) bool {
	return strings.TrimSpace(r.ImageURL) != "" &&
		strings.TrimSpace(r.Prompt) != "" &&
		!r.NSFW && !r.IsChild && !r.IsMature
}

// ThumbnailURL derives a small preview URL. Image-service prompt URLs get
// their width and height replaced by ThumbnailSize scaled to the record's
// aspect ratio; any other URL is returned unchanged.
func ThumbnailURL(imageURL string, width, height int) string {
	u, err := url.Parse(imageURL)
	if err != nil || !strings.EqualFold(u.Hostname(), imageServiceHost) ||
		!strings.HasPrefix(u.Path, "/prompt/") {
		return imageURL
	}
	tw, th := thumbnailDimensions(width, height)
	q := u.Query()
	q.Set("width", strconv.Itoa(tw))
	q.Set("height", strconv.Itoa(th))
	u.RawQuery = q.Encode()
	return u.String()
}

func thumbnailDimensions(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return ThumbnailSize, ThumbnailSize
	}
	if width >= height {
		h := int(math.Round(float64(ThumbnailSize) * float64(height) / float64(width)))
		return ThumbnailSize, max(h, 1)
	}
	w := int(math.Round(float64(ThumbnailSize) * float64(width) / float64(height)))
	return max(w, 1), ThumbnailSize
}

func dimensionOrDefault(n LooseInt) int {
	if !n.Valid || n.Value <= 0 || n.Value > math.MaxInt32 {
		return DefaultDimension
	}
	return int(n.Value)
}

// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package feed

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
)

// PromptSuffix is appended to every mock theme.
const PromptSuffix = ", detailed artwork, high quality, professional photography, trending on artstation"

const mockNegativePrompt = "worst quality, blurry, distorted"

var primaryThemes = []string{
	"A majestic mountain range at sunset",
	"A futuristic space station orbiting Earth",
	"An enchanted forest with magical creatures",
	"A cyberpunk cityscape at night",
	"A serene beach with crystal clear water",
	"A medieval castle on a hilltop",
	"An underwater scene with coral reefs",
	"A desert landscape with unique rock formations",
	"A bustling market in an ancient city",
	"A cozy cabin in a snowy forest",
}

var variantThemes = []string{
	"A steampunk airship drifting through golden clouds",
	"A Japanese garden in autumn with maple trees",
	"A colorful hot air balloon festival at dawn",
	"An astronaut riding a horse across the red dunes of Mars",
	"A fantasy castle on a floating island with waterfalls",
	"An underwater city with bioluminescent architecture",
	"A lighthouse on a rocky cliff during a thunderstorm",
	"A neon-lit noodle bar on a rainy street",
	"A glacier cave glowing with blue light",
	"A field of sunflowers under a starry sky",
}

// dimensionPreset is a width and height pair with a standard aspect ratio.
type dimensionPreset struct {
	Width, Height int
}

var dimensionPresets = []dimensionPreset{
	{1024, 1024},
	{1152, 896},
	{896, 1152},
	{1216, 832},
	{832, 1216},
	{1344, 768},
	{768, 1344},
}

var mockModels = []string{"flux", "turbo", "zimage"}

// PrimaryThemes returns a copy of the default theme pool.
func PrimaryThemes() []string {
	return append([]string(nil), primaryThemes...)
}

// VariantThemes returns a copy of the refresh theme pool.
func VariantThemes() []string {
	return append([]string(nil), variantThemes...)
}

// MockGenerator synthesizes displayable records for demo and fallback use.
// It is safe for concurrent use; every call draws from its own source.
type MockGenerator struct {
	newRand func() *rand.Rand
	now     func() time.Time
}

// MockOption configures a MockGenerator.
type MockOption func(*MockGenerator)

// WithRandSource replaces the per-call random source, mainly for tests.
func WithRandSource(fn func() *rand.Rand) MockOption {
	return func(g *MockGenerator) {
		g.newRand = fn
	}
}

// WithClock replaces the clock used for the refresh offset.
func WithClock(now func() time.Time) MockOption {
	return func(g *MockGenerator) {
		g.now = now
	}
}

// NewMockGenerator creates a generator seeded from the runtime's entropy.
func NewMockGenerator(opts ...MockOption) *MockGenerator {
	g := &MockGenerator{
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns count records. Offset shifts seeds and theme rotation so
// different pages differ. When variant is set the themes come from the
// refresh pool and a time-based offset is mixed in.
func (g *MockGenerator) Generate(count, offset int, variant bool) []Record {
	if count <= 0 {
		return []Record{}
	}
	rng := g.newRand()

	themes := primaryThemes
	baseSeed := int64(offset)
	if variant {
		themes = variantThemes
		baseSeed += g.now().UnixMilli() % 1_000_000
	}
	// page offsets are multiples of a large stride, so mix them before
	// picking the first theme or every page would start on the same one
	themeOffset := 0
	if offset > 0 {
		themeOffset = int((uint64(offset) * 2654435761 >> 16) % uint64(len(themes)))
	}
	if variant {
		themeOffset = rng.IntN(len(themes))
	}

	records := make([]Record, 0, count)
	for i := 0; i < count; i++ {
		theme := themes[(i+themeOffset)%len(themes)]
		dims := dimensionPresets[rng.IntN(len(dimensionPresets))]
		model := mockModels[rng.IntN(len(mockModels))]
		seed := baseSeed + int64(i)*7919 + rng.Int64N(7919)

		quality := "medium"
		if rng.IntN(2) == 0 {
			quality = "high"
		}

		imageURL := fmt.Sprintf("https://image.pollinations.ai/prompt/%s?width=%d&height=%d&model=%s&nologo=true&seed=%d",
			url.PathEscape(theme), dims.Width, dims.Height, model, seed)

		records = append(records, Record{
			Width:          dims.Width,
			Height:         dims.Height,
			Seed:           seed,
			Model:          model,
			Enhance:        rng.IntN(2) == 0,
			NoLogo:         true,
			NegativePrompt: mockNegativePrompt,
			Quality:        quality,
			ImageURL:       imageURL,
			ThumbnailURL:   ThumbnailURL(imageURL, dims.Width, dims.Height),
			Prompt:         theme + PromptSuffix,
			Status:         DefaultStatus,
			TimingInfo: []TimingStep{
				{Step: "Generation completed", Timestamp: int64(1000 + i*100)},
			},
		})
	}
	return records
}

// ThemeOf returns the theme a mock prompt was built from, or "" when the
// prompt does not end with PromptSuffix.
func ThemeOf(prompt string) string {
	theme, ok := strings.CutSuffix(prompt, PromptSuffix)
	if !ok {
		return ""
	}
	return theme
}

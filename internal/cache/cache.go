// Package cache provee el cache en memoria de artefactos renderizados,
// keyed por certificate id. Respalda el endpoint de preview sin re-render.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ArtifactCache guarda SVGs renderizados con TTL.
type ArtifactCache struct {
	c *gocache.Cache
}

// New crea un ArtifactCache con el TTL por defecto dado.
func New(defaultTTL time.Duration) *ArtifactCache {
	return &ArtifactCache{c: gocache.New(defaultTTL, time.Minute)}
}

// Get retorna el SVG cacheado para un certificate id.
func (a *ArtifactCache) Get(certificateID string) ([]byte, bool) {
	v, ok := a.c.Get(certificateID)
	if !ok {
		return nil, false
	}
	b, _ := v.([]byte)
	return b, true
}

// Set cachea el SVG de un certificado con el TTL por defecto.
func (a *ArtifactCache) Set(certificateID string, svg []byte) {
	a.c.Set(certificateID, svg, gocache.DefaultExpiration)
}

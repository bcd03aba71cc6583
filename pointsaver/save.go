// Package pointsaver persists generated point sets. The on-disk layout is
// magic bytes, a little-endian compatibility level, then a zstd-compressed
// gob payload of metadata plus records.
package pointsaver

import (
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/royalcat/geoscatter/pointmodel"
)

var magicBytes = []byte("GSCTR")

const compatibilityLevel uint32 = 1

type Metadata struct {
	Version     uint32
	Seed        int64
	DateCreated time.Time
}

type payload struct {
	Metadata Metadata
	Points   []pointmodel.Point
}

func Save(points []pointmodel.Point, meta Metadata, w io.Writer) error {
	_, err := w.Write(magicBytes)
	if err != nil {
		return err
	}

	err = binary.Write(w, binary.LittleEndian, compatibilityLevel)
	if err != nil {
		return err
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}

	err = gob.NewEncoder(zw).Encode(payload{Metadata: meta, Points: points})
	if err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}

func SaveToFile(name string, points []pointmodel.Point, meta Metadata) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	return Save(points, meta, file)
}

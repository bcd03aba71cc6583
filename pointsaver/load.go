package pointsaver

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/royalcat/geoscatter/pointmodel"
)

func LoadFromReader(reader io.Reader, log *slog.Logger) ([]pointmodel.Point, error) {
	magic := make([]byte, len(magicBytes))
	_, err := io.ReadFull(reader, magic)
	if err != nil {
		return nil, fmt.Errorf("error reading magic bytes: %w", err)
	}

	// no magic bytes means a legacy plain-gob file
	if !bytes.Equal(magic, magicBytes) {
		log.Info("Magic bytes not detected, trying legacy format")
		return legacyLoader(io.MultiReader(bytes.NewReader(magic), reader))
	}

	var level uint32
	err = binary.Read(reader, binary.LittleEndian, &level)
	if err != nil {
		return nil, fmt.Errorf("error reading compatibility level: %w", err)
	}

	switch level {
	case compatibilityLevel:
		zr, err := zstd.NewReader(reader)
		if err != nil {
			return nil, fmt.Errorf("error opening zstd stream: %w", err)
		}
		defer zr.Close()

		var p payload
		err = gob.NewDecoder(zr).Decode(&p)
		if err != nil {
			return nil, fmt.Errorf("error decoding points: %w", err)
		}

		log.Info("Loaded points file",
			"version", p.Metadata.Version,
			"seed", p.Metadata.Seed,
			"date_created", p.Metadata.DateCreated,
			"points", len(p.Points))
		return p.Points, nil
	}

	return nil, fmt.Errorf("unsupported compatibility level: %d", level)
}

func legacyLoader(reader io.Reader) ([]pointmodel.Point, error) {
	var points []pointmodel.Point
	err := gob.NewDecoder(reader).Decode(&points)
	if err != nil {
		return nil, fmt.Errorf("error decoding points: %w", err)
	}
	return points, nil
}

func LoadFromFile(name string, log *slog.Logger) ([]pointmodel.Point, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open points file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file, log)
}

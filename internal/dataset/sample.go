// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Cinematch Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinematch/cinematch

package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cinematch/cinematch/internal/logging"
)

// sampleMoviesCSV is a minimal item-metadata fixture in TMDB export shape,
// used when no user-provided sources exist so the service can still start.
const sampleMoviesCSV = `id,title,overview,genres,keywords
1,Avatar,"A marine on an alien planet","[{'id': 28, 'name': 'Action'}, {'id': 12, 'name': 'Adventure'}]","[{'id': 101, 'name':'alien'}]"
2,The Matrix,"A computer hacker learns reality is a simulation","[{'id': 878, 'name': 'Science Fiction'}]","[{'id': 102, 'name':'ai'}]"
3,Interstellar,"Explorers travel through a wormhole","[{'id': 12, 'name': 'Adventure'}, {'id': 18, 'name':'Drama'}]","[{'id': 103, 'name':'space'}]"
4,Inception,"A thief who steals corporate secrets by dream-sharing","[{'id': 878, 'name': 'Science Fiction'}]","[{'id': 104, 'name':'dream'}]"
`

// sampleCreditsCSV is the matching cast/crew fixture.
const sampleCreditsCSV = `movie_id,cast,crew
1,"[{'cast_id':1,'name':'Sam Worthington'},{'cast_id':2,'name':'Zoe Saldana'}]","[{'job':'Director','name':'James Cameron'}]"
2,"[{'cast_id':1,'name':'Keanu Reeves'},{'cast_id':2,'name':'Carrie-Anne Moss'}]","[{'job':'Director','name':'Lana Wachowski'}]"
3,"[{'cast_id':1,'name':'Matthew McConaughey'},{'cast_id':2,'name':'Anne Hathaway'}]","[{'job':'Director','name':'Christopher Nolan'}]"
4,"[{'cast_id':1,'name':'Leonardo DiCaprio'},{'cast_id':2,'name':'Joseph Gordon-Levitt'}]","[{'job':'Director','name':'Christopher Nolan'}]"
`

// EnsureSampleData materializes the sample fixtures for any source file that
// does not exist yet. Existing files are never touched. This runs before
// catalog construction; the pipeline itself never originates default data.
func EnsureSampleData(moviesPath, creditsPath string) error {
	if err := writeIfAbsent(moviesPath, sampleMoviesCSV); err != nil {
		return fmt.Errorf("ensure sample movies: %w", err)
	}
	if err := writeIfAbsent(creditsPath, sampleCreditsCSV); err != nil {
		return fmt.Errorf("ensure sample credits: %w", err)
	}
	return nil
}

// writeIfAbsent writes content to path unless the file already exists.
func writeIfAbsent(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return err
	}

	logging.Info().Str("path", path).Msg("sample dataset written")
	return nil
}

package tmdb

import (
	"TMDBMovieBot/configs"
	"TMDBMovieBot/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const maxCastMembers = 5

type Repo struct {
	Path   string
	APIKey string
	Client *http.Client
}

func NewRepo(config *configs.Config) *Repo {
	return &Repo{
		APIKey: config.TMDB.APIKey,
		Path:   config.TMDB.Path,
		Client: &http.Client{
			Timeout: config.TMDB.Timeout,
		},
	}
}

func (repo *Repo) SearchMovies(ctx context.Context, query string) ([]domain.Candidate, error) {
	req := fmt.Sprintf("search/movie?query=%s", url.QueryEscape(query))

	resp, err := repo.doRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	var searchResult struct {
		Results []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		} `json:"results"`
	}
	if err = json.Unmarshal(resp, &searchResult); err != nil {
		return nil, err
	}

	result := make([]domain.Candidate, 0, len(searchResult.Results))
	for _, movie := range searchResult.Results {
		result = append(result, domain.Candidate{
			ID:    movie.ID,
			Title: movie.Title,
		})
	}

	return result, nil
}

func (repo *Repo) GetMovieByID(ctx context.Context, movieID int) (domain.Movie, error) {
	req := fmt.Sprintf("movie/%d?append_to_response=credits", movieID)

	resp, err := repo.doRequest(ctx, req)
	if err != nil {
		return domain.Movie{}, err
	}

	var movieInfo struct {
		ID          int     `json:"id"`
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		Genres      []struct {
			Name string `json:"name"`
		} `json:"genres"`
		OriginalLanguage string `json:"original_language"`
		Runtime          int    `json:"runtime"`
		Budget           int64  `json:"budget"`
		Revenue          int64  `json:"revenue"`
		PosterPath       string `json:"poster_path"`
		IMDbID           string `json:"imdb_id"`
		Credits          struct {
			Cast []struct {
				Name string `json:"name"`
			} `json:"cast"`
		} `json:"credits"`
	}
	if err = json.Unmarshal(resp, &movieInfo); err != nil {
		return domain.Movie{}, err
	}

	genres := make([]string, 0, len(movieInfo.Genres))
	for _, genre := range movieInfo.Genres {
		genres = append(genres, genre.Name)
	}

	cast := make([]string, 0, maxCastMembers)
	for _, member := range movieInfo.Credits.Cast {
		if len(cast) == maxCastMembers {
			break
		}
		cast = append(cast, member.Name)
	}

	return domain.Movie{
		ID:               movieInfo.ID,
		Title:            movieInfo.Title,
		Overview:         movieInfo.Overview,
		ReleaseDate:      movieInfo.ReleaseDate,
		VoteAverage:      movieInfo.VoteAverage,
		Genres:           genres,
		Cast:             cast,
		OriginalLanguage: movieInfo.OriginalLanguage,
		RuntimeMinutes:   movieInfo.Runtime,
		Budget:           movieInfo.Budget,
		Revenue:          movieInfo.Revenue,
		PosterPath:       movieInfo.PosterPath,
		IMDbID:           movieInfo.IMDbID,
	}, nil
}

func (repo *Repo) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	const op = "Repo.doRequest"

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	target := repo.Path + endpoint + sep + "api_key=" + url.QueryEscape(repo.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request:%w", op, err)
	}
	req.Header.Add("accept", "application/json")

	resp, err := repo.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: bad status %d, response: %s", op, resp.StatusCode, body)
	}

	return io.ReadAll(resp.Body)
}

package tmdb

import "github.com/mmcdole/marquee/internal/domain"

// MapMovie converts a TMDB movie to the domain type
func MapMovie(dto movieDTO) domain.Movie {
	return domain.Movie{
		ID:            dto.ID,
		Title:         dto.Title,
		OriginalTitle: dto.OriginalTitle,
		Overview:      dto.Overview,
		PosterPath:    deref(dto.PosterPath),
		BackdropPath:  deref(dto.BackdropPath),
		ReleaseDate:   dto.ReleaseDate,
		VoteAverage:   dto.VoteAverage,
		VoteCount:     dto.VoteCount,
		Popularity:    dto.Popularity,
		GenreIDs:      dto.GenreIDs,
	}
}

// MapMovies converts a slice of TMDB movies
func MapMovies(dtos []movieDTO) []domain.Movie {
	movies := make([]domain.Movie, len(dtos))
	for i, dto := range dtos {
		movies[i] = MapMovie(dto)
	}
	return movies
}

// MapPage converts a TMDB page, capping total pages at domain.MaxPages
func MapPage(dto pageDTO) domain.MoviePage {
	total := dto.TotalPages
	if total > domain.MaxPages {
		total = domain.MaxPages
	}
	return domain.MoviePage{
		Page:         dto.Page,
		TotalPages:   total,
		TotalResults: dto.TotalResults,
		Results:      MapMovies(dto.Results),
	}
}

// MapGenres converts the genre list
func MapGenres(dtos []genreDTO) []domain.Genre {
	genres := make([]domain.Genre, len(dtos))
	for i, g := range dtos {
		genres[i] = domain.Genre{ID: g.ID, Name: g.Name}
	}
	return genres
}

// MapMovieDetail converts a full movie record
func MapMovieDetail(dto movieDetailDTO) *domain.MovieDetail {
	detail := &domain.MovieDetail{
		Movie:    MapMovie(dto.movieDTO),
		Tagline:  dto.Tagline,
		Status:   dto.Status,
		Genres:   MapGenres(dto.Genres),
		Homepage: dto.Homepage,
		IMDbID:   deref(dto.IMDbID),
	}
	if dto.Runtime != nil {
		detail.Runtime = *dto.Runtime
	}
	// Detail payloads carry genres, not genre_ids
	if len(detail.GenreIDs) == 0 {
		for _, g := range detail.Genres {
			detail.GenreIDs = append(detail.GenreIDs, g.ID)
		}
	}
	return detail
}

// MapCredits converts movie credits
func MapCredits(dto creditsDTO) *domain.Credits {
	credits := &domain.Credits{
		Cast: make([]domain.CastMember, len(dto.Cast)),
		Crew: make([]domain.CrewMember, len(dto.Crew)),
	}
	for i, c := range dto.Cast {
		credits.Cast[i] = domain.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: deref(c.ProfilePath),
			Order:       c.Order,
		}
	}
	for i, c := range dto.Crew {
		credits.Crew[i] = domain.CrewMember{
			ID:         c.ID,
			Name:       c.Name,
			Job:        c.Job,
			Department: c.Department,
		}
	}
	return credits
}

// MapVideos converts videos, keeping only those hosted on YouTube
func MapVideos(dtos []videoDTO) []domain.Video {
	videos := make([]domain.Video, 0, len(dtos))
	for _, v := range dtos {
		if v.Site != SiteYouTube {
			continue
		}
		videos = append(videos, domain.Video{
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		})
	}
	return videos
}

// MapPerson converts a person record
func MapPerson(dto personDTO) *domain.Person {
	return &domain.Person{
		ID:                 dto.ID,
		Name:               dto.Name,
		Biography:          dto.Biography,
		Birthday:           deref(dto.Birthday),
		PlaceOfBirth:       deref(dto.PlaceOfBirth),
		ProfilePath:        deref(dto.ProfilePath),
		KnownForDepartment: dto.KnownForDepartment,
	}
}

// MapPersonCredits converts a person's movie credits
func MapPersonCredits(dto personCreditsDTO) *domain.PersonCredits {
	return &domain.PersonCredits{Cast: MapMovies(dto.Cast)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

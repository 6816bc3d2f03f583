package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/models"
	appRepos "github.com/KushanLaksitha/university-work-analyzer-sub001/internal/app/repositories"
	"github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/apperrors"
	pkgAuth "github.com/KushanLaksitha/university-work-analyzer-sub001/internal/pkg/auth"
)

// CreateDefaultData creates a demo account with starter subjects the first
// time the database comes up. Existing data is left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	subjectRepo := appRepos.NewSubjectRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")

	existing, err := userRepo.GetByEmail(ctx, "demo@student.edu")
	if err != nil {
		return err
	}
	if existing != nil {
		lgr.Debug().Msg("Default data already present, skipping")
		return nil
	}

	hash, err := pkgAuth.HashPassword("demo-password")
	if err != nil {
		return err
	}

	demoID, err := userRepo.Create(ctx, &appModels.User{
		Email:        "demo@student.edu",
		PasswordHash: hash,
		FirstName:    "Demo",
		LastName:     "Student",
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	var finalErr error
	for _, name := range []string{"Mathematics", "Computer Science", "English"} {
		if _, err := subjectRepo.Create(ctx, &appModels.Subject{UserID: demoID, Name: name}); err != nil {
			lgr.Error().Err(err).Str("subject", name).Msg("Error creating default subject")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int64("userID", demoID).Msg("Default demo account created")
	}
	return finalErr
}

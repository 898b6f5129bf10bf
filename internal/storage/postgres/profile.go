package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/charplanner/internal/game/character"
)

// ErrProfileNotFound is returned when a profile lookup yields no results.
var ErrProfileNotFound = errors.New("profile not found")

// ErrProfileNameTaken is returned when creating a profile with a name that
// already exists.
var ErrProfileNameTaken = errors.New("profile name already taken")

// ProfileRepository persists character snapshots. Only raw invested
// improvements are stored; derived sheets are recomputed on load and never
// written to the database.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a ProfileRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// encodeSkills marshals a raw skill map for the JSONB column.
func encodeSkills(skills map[int]int) ([]byte, error) {
	if skills == nil {
		skills = map[int]int{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("encoding skills: %w", err)
	}
	return data, nil
}

// decodeSkills unmarshals the JSONB column back into a raw skill map.
func decodeSkills(data []byte) (map[int]int, error) {
	var byName map[string]int
	if err := json.Unmarshal(data, &byName); err != nil {
		return nil, fmt.Errorf("decoding skills: %w", err)
	}
	out := make(map[int]int, len(byName))
	for key, raw := range byName {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("decoding skills: non-numeric skill id %q", key)
		}
		out[id] = raw
	}
	return out, nil
}

// Create inserts a new profile and returns it with ID and timestamps set.
//
// Precondition: snap.Name must be non-empty and snap must pass Validate.
// Postcondition: Returns the created snapshot with a fresh UUID, or
// ErrProfileNameTaken on duplicate name.
func (r *ProfileRepository) Create(ctx context.Context, snap *character.Snapshot) (*character.Snapshot, error) {
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	skills, err := encodeSkills(snap.Skills)
	if err != nil {
		return nil, err
	}
	id := snap.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO character_profiles
			(id, name, level, breed, profession,
			 strength, agility, stamina, intelligence, sense, psychic, skills)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id, name, level, breed, profession,
		          strength, agility, stamina, intelligence, sense, psychic,
		          skills, created_at, updated_at`,
		id, snap.Name, snap.Level, snap.Breed, snap.Profession,
		snap.Abilities[character.AbilityStrength],
		snap.Abilities[character.AbilityAgility],
		snap.Abilities[character.AbilityStamina],
		snap.Abilities[character.AbilityIntelligence],
		snap.Abilities[character.AbilitySense],
		snap.Abilities[character.AbilityPsychic],
		skills,
	)
	out, err := scanProfile(row)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrProfileNameTaken
		}
		return nil, fmt.Errorf("inserting profile: %w", err)
	}
	return out, nil
}

// GetByID returns the profile with the given id.
//
// Postcondition: Returns ErrProfileNotFound if no profile matches.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*character.Snapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, level, breed, profession,
		       strength, agility, stamina, intelligence, sense, psychic,
		       skills, created_at, updated_at
		FROM character_profiles WHERE id = $1`, id)
	out, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("fetching profile %s: %w", id, err)
	}
	return out, nil
}

// GetByName returns the profile with the given name.
//
// Postcondition: Returns ErrProfileNotFound if no profile matches.
func (r *ProfileRepository) GetByName(ctx context.Context, name string) (*character.Snapshot, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, level, breed, profession,
		       strength, agility, stamina, intelligence, sense, psychic,
		       skills, created_at, updated_at
		FROM character_profiles WHERE name = $1`, name)
	out, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("fetching profile %q: %w", name, err)
	}
	return out, nil
}

// List returns all profiles ordered by creation time.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *ProfileRepository) List(ctx context.Context) ([]*character.Snapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, level, breed, profession,
		       strength, agility, stamina, intelligence, sense, psychic,
		       skills, created_at, updated_at
		FROM character_profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*character.Snapshot, 0)
	for rows.Next() {
		snap, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		profiles = append(profiles, snap)
	}
	return profiles, rows.Err()
}

// Save writes the snapshot's level and raw improvements back to the
// database. The derived sheet is not persisted.
//
// Precondition: snap.ID must reference an existing profile.
// Postcondition: Returns ErrProfileNotFound if the id does not exist.
func (r *ProfileRepository) Save(ctx context.Context, snap *character.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	skills, err := encodeSkills(snap.Skills)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE character_profiles
		SET level = $2, breed = $3, profession = $4,
		    strength = $5, agility = $6, stamina = $7,
		    intelligence = $8, sense = $9, psychic = $10,
		    skills = $11, updated_at = NOW()
		WHERE id = $1`,
		snap.ID, snap.Level, snap.Breed, snap.Profession,
		snap.Abilities[character.AbilityStrength],
		snap.Abilities[character.AbilityAgility],
		snap.Abilities[character.AbilityStamina],
		snap.Abilities[character.AbilityIntelligence],
		snap.Abilities[character.AbilitySense],
		snap.Abilities[character.AbilityPsychic],
		skills,
	)
	if err != nil {
		return fmt.Errorf("saving profile %s: %w", snap.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// Delete removes a profile.
//
// Postcondition: Returns ErrProfileNotFound if the id does not exist.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM character_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting profile %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// scanProfile reads one profile row into a snapshot.
func scanProfile(row pgx.Row) (*character.Snapshot, error) {
	var snap character.Snapshot
	var skills []byte
	err := row.Scan(
		&snap.ID, &snap.Name, &snap.Level, &snap.Breed, &snap.Profession,
		&snap.Abilities[character.AbilityStrength],
		&snap.Abilities[character.AbilityAgility],
		&snap.Abilities[character.AbilityStamina],
		&snap.Abilities[character.AbilityIntelligence],
		&snap.Abilities[character.AbilitySense],
		&snap.Abilities[character.AbilityPsychic],
		&skills, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.Skills, err = decodeSkills(skills)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}

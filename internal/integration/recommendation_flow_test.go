package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/database"
	"career-compass/internal/database/migration"
	dbpostgres "career-compass/internal/database/postgres"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type authData struct {
	AccessToken string `json:"access_token"`
}

type recommendationDetailItem struct {
	ID              uuid.UUID `json:"id"`
	Score           float64   `json:"score"`
	MatchPercentage int       `json:"match_percentage"`
	Career          struct {
		ID    uuid.UUID `json:"id"`
		Title string    `json:"title"`
	} `json:"career"`
	SuggestedCourses []struct {
		ID    uuid.UUID `json:"id"`
		Title string    `json:"title"`
	} `json:"suggested_courses"`
}

type gapSkill struct {
	Name string `json:"name"`
}

type gapData struct {
	Readiness     int        `json:"readiness"`
	SkillsHeld    []gapSkill `json:"skills_held"`
	SkillsMissing []gapSkill `json:"skills_missing"`
}

func TestIntegration_RegisterSkillsGenerateGap(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedCatalog(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestApp(db)

	email := "it-" + uuid.NewString()[:8] + "@example.com"
	seed.userEmails = append(seed.userEmails, email)
	tok := registerAndGetToken(t, app, email)

	addSkill(t, app, tok, seed.skillGo, "ADVANCED")
	addSkill(t, app, tok, seed.skillSQL, "BEGINNER")

	// Generate: the seeded career requires Go, SQL and Docker, so the
	// concrete scoring scenario applies.
	genBody := doJSON(t, app, "POST", "/api/v1/recommendations/generate", tok, nil)
	var generated []recommendationDetailItem
	if err := json.Unmarshal(genBody, &generated); err != nil {
		t.Fatalf("decode generated recommendations: %v", err)
	}
	if len(generated) == 0 {
		t.Fatalf("expected at least one recommendation")
	}
	found := false
	for _, d := range generated {
		if d.Career.ID == seed.careerID {
			found = true
			if d.MatchPercentage != 67 {
				t.Fatalf("expected match percentage 67, got %d", d.MatchPercentage)
			}
			if d.Score != 52.9 {
				t.Fatalf("expected score 52.9, got %v", d.Score)
			}
			if d.Career.Title == "" {
				t.Fatalf("expected generate to return career detail, got %+v", d)
			}
		}
	}
	if !found {
		t.Fatalf("seeded career %s not in recommendations", seed.careerID)
	}

	// Read back the persisted set with career detail and course suggestions.
	listBody := doJSON(t, app, "GET", "/api/v1/recommendations/", tok, nil)
	var details []recommendationDetailItem
	if err := json.Unmarshal(listBody, &details); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if len(details) != len(generated) {
		t.Fatalf("expected %d persisted recommendations, got %d", len(generated), len(details))
	}

	// Regenerating must replace, not accumulate.
	doJSON(t, app, "POST", "/api/v1/recommendations/generate", tok, nil)
	listBody = doJSON(t, app, "GET", "/api/v1/recommendations/", tok, nil)
	var again []recommendationDetailItem
	if err := json.Unmarshal(listBody, &again); err != nil {
		t.Fatalf("decode details: %v", err)
	}
	if len(again) != len(details) {
		t.Fatalf("regenerate accumulated rows: %d then %d", len(details), len(again))
	}

	// Gap analysis against the seeded career: Go and SQL held, Docker missing.
	gapBody := doJSON(t, app, "GET", "/api/v1/careers/"+seed.careerID.String()+"/gap-analysis", tok, nil)
	var gap gapData
	if err := json.Unmarshal(gapBody, &gap); err != nil {
		t.Fatalf("decode gap: %v", err)
	}
	if gap.Readiness != 67 {
		t.Fatalf("expected readiness 67, got %d", gap.Readiness)
	}
	if len(gap.SkillsHeld) != 2 || len(gap.SkillsMissing) != 1 {
		t.Fatalf("unexpected gap partition: held=%d missing=%d", len(gap.SkillsHeld), len(gap.SkillsMissing))
	}
}

type catalogSeed struct {
	skillGo     uuid.UUID
	skillSQL    uuid.UUID
	skillDocker uuid.UUID
	careerID    uuid.UUID
	courseID    uuid.UUID
	userEmails  []string
}

func seedCatalog(t *testing.T, ctx context.Context, db database.DB) *catalogSeed {
	t.Helper()

	s := &catalogSeed{
		skillGo:     uuid.New(),
		skillSQL:    uuid.New(),
		skillDocker: uuid.New(),
		careerID:    uuid.New(),
		courseID:    uuid.New(),
	}

	suffix := uuid.NewString()[:8]
	for name, id := range map[string]uuid.UUID{
		"Go-it-" + suffix:     s.skillGo,
		"SQL-it-" + suffix:    s.skillSQL,
		"Docker-it-" + suffix: s.skillDocker,
	} {
		if _, err := db.Exec(ctx,
			`INSERT INTO skills (id, name, category) VALUES ($1, $2, 'Integration')`,
			id, name,
		); err != nil {
			t.Fatalf("seed skill: %v", err)
		}
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO careers (id, title, description, industry) VALUES ($1, $2, 'it', 'Software')`,
		s.careerID, "IT Backend Engineer "+suffix,
	); err != nil {
		t.Fatalf("seed career: %v", err)
	}
	for _, sid := range []uuid.UUID{s.skillGo, s.skillSQL, s.skillDocker} {
		if _, err := db.Exec(ctx,
			`INSERT INTO career_skills (id, career_id, skill_id) VALUES ($1, $2, $3)`,
			uuid.New(), s.careerID, sid,
		); err != nil {
			t.Fatalf("seed career skill: %v", err)
		}
	}

	if _, err := db.Exec(ctx,
		`INSERT INTO courses (id, title, provider, difficulty) VALUES ($1, $2, 'it', 'BEGINNER')`,
		s.courseID, "Docker Essentials "+suffix,
	); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	if _, err := db.Exec(ctx,
		`INSERT INTO course_skills (id, course_id, skill_id) VALUES ($1, $2, $3)`,
		uuid.New(), s.courseID, s.skillDocker,
	); err != nil {
		t.Fatalf("seed course skill: %v", err)
	}

	return s
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, s *catalogSeed) {
	t.Helper()

	_, _ = db.Exec(ctx, `DELETE FROM recommendations WHERE career_id = $1`, s.careerID)
	_, _ = db.Exec(ctx, `DELETE FROM course_skills WHERE course_id = $1`, s.courseID)
	_, _ = db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, s.courseID)
	_, _ = db.Exec(ctx, `DELETE FROM career_skills WHERE career_id = $1`, s.careerID)
	_, _ = db.Exec(ctx, `DELETE FROM careers WHERE id = $1`, s.careerID)
	for _, sid := range []uuid.UUID{s.skillGo, s.skillSQL, s.skillDocker} {
		_, _ = db.Exec(ctx, `DELETE FROM user_skills WHERE skill_id = $1`, sid)
		_, _ = db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, sid)
	}
	for _, email := range s.userEmails {
		_, _ = db.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	}
}

func newTestApp(db database.DB) *fiber.App {
	cfg := config.Config{}
	cfg.JWT = config.JWTConfig{
		AccessSecret:     "it-access-secret",
		RefreshSecret:    "it-refresh-secret",
		AccessExpiresIn:  15 * time.Minute,
		RefreshExpiresIn: 7 * 24 * time.Hour,
	}

	f := fiber.New(fiber.Config{})
	f.Use(middleware.NewErrorMiddleware().Middleware())
	routes.NewRegistry(cfg, db, nil, nil).Register(f)
	return f
}

func registerAndGetToken(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	body := doJSON(t, app, "POST", "/api/v1/auth/register", "", map[string]any{
		"name":     "Integration User",
		"email":    email,
		"password": "integration-pass",
	})

	var data authData
	if err := json.Unmarshal(body, &data); err != nil {
		t.Fatalf("decode auth data: %v", err)
	}
	if data.AccessToken == "" {
		t.Fatalf("register: empty access_token")
	}
	return data.AccessToken
}

func addSkill(t *testing.T, app *fiber.App, tok string, skillID uuid.UUID, level string) {
	t.Helper()
	doJSON(t, app, "POST", "/api/v1/me/skills/", tok, map[string]any{
		"skill_id": skillID,
		"level":    level,
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path, tok string, payload any) json.RawMessage {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := app.Test(req, fiber.TestConfig{Timeout: 30 * time.Second})
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = res.Body.Close() }()

	var sr semanticResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	if res.StatusCode >= 400 {
		t.Fatalf("%s %s: status %d message %q", method, path, res.StatusCode, sr.Message)
	}
	return sr.Data
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := firstNonEmpty(os.Getenv("CAREERCOMPASS_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := firstNonEmpty(os.Getenv("CAREERCOMPASS_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := firstNonEmpty(os.Getenv("CAREERCOMPASS_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := firstNonEmpty(os.Getenv("CAREERCOMPASS_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := firstNonEmpty(os.Getenv("CAREERCOMPASS_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := firstNonEmpty(os.Getenv("CAREERCOMPASS_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set CAREERCOMPASS_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	})
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	r := migration.Runner{Dir: resolveMigrationsDir(t)}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")
	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found: %s", migDir)
	}
	return migDir
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

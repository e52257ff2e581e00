package calai

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MEME-CORP/calaiweb/internal/app"
	"github.com/MEME-CORP/calaiweb/internal/db"
	"github.com/MEME-CORP/calaiweb/internal/service"
	"github.com/MEME-CORP/calaiweb/internal/store"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	logger.Printf("opened %s", path)
	return run(sqldb)
}

// withState loads the stores from the database. Store writes do not return
// errors, so the persister's first failure is checked once loading is done
// and again after run.
func withState(run func(*sql.DB, *service.State) error) error {
	return withDB(func(sqldb *sql.DB) error {
		kv := db.NewKV(sqldb, logger)
		st := service.NewState(kv)
		if err := kv.Err(); err != nil {
			return err
		}
		if err := run(sqldb, st); err != nil {
			return err
		}
		return kv.Err()
	})
}

func requireOnboarded(st *service.State) error {
	if st.Onboarding.Completed() {
		return nil
	}
	step := st.Onboarding.Step()
	return fmt.Errorf("onboarding is not finished (step %d of %d: %s); run `calai onboarding next` to continue", step, store.TotalSteps, store.StepName(step))
}

func location() (*time.Location, error) {
	return cfg.Location()
}

// parseDay reads a YYYY-MM-DD flag in the configured zone; empty means today.
func parseDay(flag, value string) (time.Time, error) {
	loc, err := location()
	if err != nil {
		return time.Time{}, err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD)", flag, value)
	}
	return t, nil
}

func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	loc, err := location()
	if err != nil {
		return time.Time{}, err
	}
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Now().In(loc), nil
	}
	if date == "" {
		date = time.Now().In(loc).Format("2006-01-02")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func kcal(n int) string {
	return printer.Sprintf("%d kcal", n)
}

func grams(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "g"
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

package postgres

import (
	"context"
	"fmt"

	"discount/internal/adapters/out/postgres/accountrepo"
	"discount/internal/adapters/out/postgres/couponrepo"
	"discount/internal/adapters/out/postgres/customerrepo"
	"discount/internal/adapters/out/postgres/driverrepo"
	"discount/internal/adapters/out/postgres/offerrepo"
	"discount/internal/adapters/out/postgres/orderrepo"

	faster "github.com/go-faster/errors"
	"gorm.io/gorm"
)

// ChangeChannel is the LISTEN/NOTIFY channel row changes are published on.
const ChangeChannel = "discount_changes"

// WatchedTables publish a notification for every inserted, updated or deleted row.
var WatchedTables = []string{"offers", "customers", "coupons", "orders", "drivers"}

const notifyFunction = `
CREATE OR REPLACE FUNCTION notify_discount_change() RETURNS trigger AS $$
DECLARE
	row_id uuid;
BEGIN
	IF TG_OP = 'DELETE' THEN
		row_id := OLD.id;
	ELSE
		row_id := NEW.id;
	END IF;
	PERFORM pg_notify('` + ChangeChannel + `', json_build_object(
		'table', TG_TABLE_NAME,
		'op', TG_OP,
		'id', row_id
	)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql;`

// Migrate creates the tables and installs the change notification triggers.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&offerrepo.OfferDTO{},
		&customerrepo.CustomerDTO{},
		&couponrepo.CouponDTO{},
		&driverrepo.DriverDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.StatusChangeDTO{},
		&accountrepo.AccountDTO{},
	); err != nil {
		return faster.Wrap(err, "auto migrate")
	}

	if err := db.Exec(notifyFunction).Error; err != nil {
		return faster.Wrap(err, "create notify function")
	}
	for _, table := range WatchedTables {
		trigger := table + "_notify_change"
		stmts := []string{
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, trigger, table),
			fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s
				FOR EACH ROW EXECUTE FUNCTION notify_discount_change()`, trigger, table),
		}
		for _, stmt := range stmts {
			if err := db.Exec(stmt).Error; err != nil {
				return faster.Wrapf(err, "install trigger on %s", table)
			}
		}
	}
	return nil
}

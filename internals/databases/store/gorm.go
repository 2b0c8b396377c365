package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TreeNodeModel adalah satu leaf tree. Object tidak disimpan sebagai baris;
// strukturnya dibentuk ulang dari path.
type TreeNodeModel struct {
	Path      string         `gorm:"column:path;type:text;primaryKey"`
	Value     datatypes.JSON `gorm:"column:value;type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (TreeNodeModel) TableName() string {
	return "tree_nodes"
}

// GormStore menyimpan tree di PostgreSQL, satu baris per leaf.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore memastikan tabel tree_nodes ada lalu mengembalikan store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: db nil", ErrUnavailable)
	}
	if err := db.AutoMigrate(&TreeNodeModel{}); err != nil {
		return nil, unavailable("migrate", err)
	}
	return &GormStore{DB: db}, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("store %s: %w: %w", op, ErrUnavailable, err)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// subtree memfilter baris milik path dan seluruh keturunannya.
func subtree(tx *gorm.DB, path string) *gorm.DB {
	if path == "" {
		return tx.Where("1 = 1")
	}
	return tx.Where(`path = ? OR path LIKE ? ESCAPE '\'`, path, escapeLike(path)+"/%")
}

func (s *GormStore) rows(ctx context.Context, path string) ([]TreeNodeModel, error) {
	var rows []TreeNodeModel
	if err := subtree(s.DB.WithContext(ctx), path).Find(&rows).Error; err != nil {
		return nil, unavailable("get", err)
	}
	return rows, nil
}

// assemble membangun ulang nilai di path dari baris leaf.
func assemble(path string, rows []TreeNodeModel) (any, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	tree := map[string]any{}
	for _, r := range rows {
		var v any
		if err := sonic.Unmarshal(r.Value, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.Path, err)
		}
		if r.Path == path {
			// leaf tepat di path; tidak mungkin ada keturunan
			return v, nil
		}
		rel := strings.TrimPrefix(r.Path, path)
		insertLeaf(tree, Split(rel), v)
	}
	return tree, nil
}

func (s *GormStore) Get(ctx context.Context, path string) (Node, error) {
	path = Join(path)
	rows, err := s.rows(ctx, path)
	if err != nil {
		return nil, err
	}
	v, err := assemble(path, rows)
	if err != nil {
		return nil, err
	}
	if m, ok := v.(map[string]any); ok {
		return Node(m), nil
	}
	return Node{}, nil
}

func (s *GormStore) Value(ctx context.Context, path string) (any, error) {
	path = Join(path)
	rows, err := s.rows(ctx, path)
	if err != nil {
		return nil, err
	}
	return assemble(path, rows)
}

func (s *GormStore) Set(ctx context.Context, path string, value any) error {
	return s.Apply(ctx, map[string]any{path: value})
}

func (s *GormStore) Update(ctx context.Context, path string, fields map[string]any) error {
	ops := make(map[string]any, len(fields))
	for k, v := range fields {
		ops[Join(path, k)] = v
	}
	return s.Apply(ctx, ops)
}

func (s *GormStore) Delete(ctx context.Context, path string) error {
	return s.Apply(ctx, map[string]any{path: nil})
}

func (s *GormStore) Apply(ctx context.Context, ops map[string]any) error {
	normalized := make(map[string]any, len(ops))
	for p, v := range ops {
		nv, err := normalize(v)
		if err != nil {
			return err
		}
		normalized[Join(p)] = nv
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range sortedKeys(normalized) {
			if err := writeTx(tx, p, normalized[p]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return unavailable("write", err)
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return unavailable("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// writeTx mengganti subtree di path dengan value dalam transaksi tx.
func writeTx(tx *gorm.DB, path string, value any) error {
	if _, isObject := value.(map[string]any); path == "" && !isObject {
		value = nil
	}
	// leaf di ancestor akan tertimpa oleh object baru
	if ancestors := ancestorsOf(path); len(ancestors) > 0 && !isEmpty(value) {
		if err := tx.Where("path IN ?", ancestors).Delete(&TreeNodeModel{}).Error; err != nil {
			return err
		}
	}
	if err := subtree(tx, path).Delete(&TreeNodeModel{}).Error; err != nil {
		return err
	}

	leaves := map[string]any{}
	flatten(path, value, leaves)
	if len(leaves) == 0 {
		return nil
	}

	batch := make([]TreeNodeModel, 0, len(leaves))
	for _, p := range sortedKeys(leaves) {
		raw, err := sonic.Marshal(leaves[p])
		if err != nil {
			return err
		}
		batch = append(batch, TreeNodeModel{Path: p, Value: datatypes.JSON(raw)})
	}
	return tx.CreateInBatches(batch, 200).Error
}

func ancestorsOf(path string) []string {
	segs := Split(path)
	out := make([]string, 0, len(segs))
	for i := 1; i < len(segs); i++ {
		out = append(out, strings.Join(segs[:i], "/"))
	}
	return out
}

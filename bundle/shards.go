package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
)

// Variable shards are named export-<index>-of-<total> with 5-digit
// zero-padded fields, mirroring how the export writer partitions the
// checkpoint.
var shardNameRe = regexp.MustCompile(`^export-(\d{5})-of-(\d{5})$`)

// ShardFilename renders the shard file name for index within total.
func ShardFilename(index, total int) string {
	return fmt.Sprintf("export-%05d-of-%05d", index, total)
}

// scanShards inspects dir and returns the shard file path pattern to feed
// into the restore operation. All shard files must agree on the declared
// total, and every index 0..total-1 must be present.
//
// Inconsistent totals mean two overlapping shard sets were written into
// the same version (a failed export retried in place); that is treated as
// a corrupt export rather than a missing-shard condition.
func scanShards(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRestore, dir, err)
	}

	total := -1
	present := map[int]bool{}
	for _, entry := range entries {
		m := shardNameRe.FindStringSubmatch(entry.Name())
		if m == nil || entry.IsDir() {
			continue
		}

		index, _ := strconv.Atoi(m[1])
		declared, _ := strconv.Atoi(m[2])

		if total >= 0 && declared != total {
			return "", fmt.Errorf("%w: shard files declare both %d and %d total shards in %s",
				ErrCorruptFormat, total, declared, dir)
		}
		total = declared

		if index >= declared {
			return "", fmt.Errorf("%w: shard index %d out of range for %d shards",
				ErrCorruptFormat, index, declared)
		}
		present[index] = true
	}

	if total < 0 {
		return "", fmt.Errorf("%w: no shard files in %s", ErrRestore, dir)
	}

	for index := 0; index < total; index++ {
		if !present[index] {
			return "", fmt.Errorf("%w: shard %s missing from %s",
				ErrRestore, ShardFilename(index, total), dir)
		}
	}

	return filepath.Join(dir, fmt.Sprintf("export-?????-of-%05d", total)), nil
}

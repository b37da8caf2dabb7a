/*
 * SPDX-FileCopyrightText: © 2017-2025 Istari Digital, Inc.
 * SPDX-License-Identifier: Apache-2.0
 */

package z

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SuperFlag holds a set of options written as a single string, for example:
//
//	match=exact; aging=lru-k; depth=20; k-times=2;
//
// Keys are case insensitive and underscores are treated as dashes, so
// "K_Times" and "k-times" name the same option.
type SuperFlag struct {
	m map[string]string
}

func parseFlag(flag string) (map[string]string, error) {
	kvm := make(map[string]string)
	for _, kv := range strings.Split(flag, ";") {
		if strings.TrimSpace(kv) == "" {
			continue
		}
		splits := strings.SplitN(kv, "=", 2)
		if len(splits) != 2 {
			return nil, errors.Errorf("option %q is not of the form key=value", strings.TrimSpace(kv))
		}
		k := strings.TrimSpace(splits[0])
		k = strings.ToLower(k)
		k = strings.ReplaceAll(k, "_", "-")
		kvm[k] = strings.TrimSpace(splits[1])
	}
	return kvm, nil
}

// NewSuperFlag parses flag into a SuperFlag.
func NewSuperFlag(flag string) (*SuperFlag, error) {
	m, err := parseFlag(flag)
	if err != nil {
		return nil, errors.Wrapf(err, "while parsing %q", flag)
	}
	return &SuperFlag{m: m}, nil
}

func (sf *SuperFlag) String() string {
	if sf == nil {
		return ""
	}
	kvs := make([]string, 0, len(sf.m))
	for k, v := range sf.m {
		kvs = append(kvs, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(kvs)
	return strings.Join(kvs, "; ")
}

// MergeAndCheckDefault fills the options missing from sf with the values found
// in defaults. Every key of sf must also be present in defaults, otherwise an
// error naming the valid options is returned.
func (sf *SuperFlag) MergeAndCheckDefault(defaults string) (*SuperFlag, error) {
	src, err := parseFlag(defaults)
	if err != nil {
		return nil, errors.Wrapf(err, "while parsing defaults %q", defaults)
	}
	if sf == nil {
		return &SuperFlag{m: src}, nil
	}
	var invalid []string
	for k := range sf.m {
		if _, ok := src[k]; !ok {
			invalid = append(invalid, k)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, errors.Errorf("found invalid options %v in %q. Valid options: %v",
			invalid, sf.String(), defaults)
	}
	for k, v := range src {
		if _, ok := sf.m[k]; !ok {
			sf.m[k] = v
		}
	}
	return sf, nil
}

func (sf *SuperFlag) Has(opt string) bool {
	return sf.GetString(opt) != ""
}

func (sf *SuperFlag) GetBool(opt string) (bool, error) {
	val := sf.GetString(opt)
	if val == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, errors.Wrapf(err,
			"unable to parse %s as bool for key: %s. Options: %s", val, opt, sf)
	}
	return b, nil
}

func (sf *SuperFlag) GetInt64(opt string) (int64, error) {
	val := sf.GetString(opt)
	if val == "" {
		return 0, nil
	}
	i, err := strconv.ParseInt(val, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err,
			"unable to parse %s as int64 for key: %s. Options: %s", val, opt, sf)
	}
	return i, nil
}

func (sf *SuperFlag) GetUint64(opt string) (uint64, error) {
	val := sf.GetString(opt)
	if val == "" {
		return 0, nil
	}
	u, err := strconv.ParseUint(val, 0, 64)
	if err != nil {
		return 0, errors.Wrapf(err,
			"unable to parse %s as uint64 for key: %s. Options: %s", val, opt, sf)
	}
	return u, nil
}

func (sf *SuperFlag) GetString(opt string) string {
	if sf == nil {
		return ""
	}
	return sf.m[opt]
}

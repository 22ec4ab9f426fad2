// Copyright (c) 2026 lxcui Team
// lxcui - terminal LXC container manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package slicest holds generic slice helpers.
package slicest

// MapXI maps every element of s with fn and stops at the first error.
// - X: Stops on failure and returns error.
// - I: Provides index to callback.
func MapXI[T, U any, S ~[]T](s S, fn func(int, T) (U, error)) ([]U, error) {
	result := make([]U, len(s))
	for i, v := range s {
		out, err := fn(i, v)
		if err != nil {
			return nil, err
		}
		result[i] = out
	}
	return result, nil
}

// MapI maps every element of s with fn.
// - I: Provides index to callback.
func MapI[T, U any, S ~[]T](s S, fn func(int, T) U) []U {
	result, _ := MapXI(s, func(i int, t T) (U, error) {
		return fn(i, t), nil
	})
	return result
}

// Map maps every element of s with fn.
func Map[T, U any, S ~[]T](s S, fn func(T) U) []U {
	result, _ := MapXI(s, func(_ int, t T) (U, error) {
		return fn(t), nil
	})
	return result
}

package jenkins

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ACL 静态授权表：全局授权与按作业授权。
//
// Administer 蕴含其他所有权限；作业上的授权对其子项同样生效。
type ACL struct {
	mu     sync.RWMutex
	global map[string][]Permission
	items  map[string]map[string][]Permission
}

// NewACL 创建空授权表。
func NewACL() *ACL {
	return &ACL{
		global: make(map[string][]Permission),
		items:  make(map[string]map[string][]Permission),
	}
}

// Grant 授予 principal 权限；item 为空表示全局授权。
func (a *ACL) Grant(principal string, permission Permission, item string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	item = strings.Trim(item, "/")
	if item == "" {
		a.global[principal] = appendUnique(a.global[principal], permission)

		return
	}
	if a.items[item] == nil {
		a.items[item] = make(map[string][]Permission)
	}
	a.items[item][principal] = appendUnique(a.items[item][principal], permission)
}

// ParseGrant 解析 "Permission:principal" 或 "Permission:principal@item" 形式的授权。
func (a *ACL) ParseGrant(grant string) error {
	perm, rest, ok := strings.Cut(grant, ":")
	if !ok || perm == "" || rest == "" {
		return fmt.Errorf("invalid grant %q: expected PERMISSION:PRINCIPAL[@ITEM]", grant)
	}
	principal, item, _ := strings.Cut(rest, "@")
	if principal == "" {
		return fmt.Errorf("invalid grant %q: empty principal", grant)
	}
	a.Grant(principal, Permission(perm), item)

	return nil
}

// HasPermission 检查 principals 中任意一个是否持有权限。
func (a *ACL) HasPermission(principals []string, permission Permission, item string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, p := range principals {
		if granted(a.global[p], permission) {
			return true
		}
	}

	item = strings.Trim(item, "/")
	for item != "" {
		grants := a.items[item]
		for _, p := range principals {
			if granted(grants[p], permission) {
				return true
			}
		}
		idx := strings.LastIndexByte(item, '/')
		if idx < 0 {
			break
		}
		item = item[:idx]
	}

	return false
}

func granted(perms []Permission, permission Permission) bool {
	return slices.Contains(perms, Administer) || slices.Contains(perms, permission)
}

func appendUnique(perms []Permission, p Permission) []Permission {
	if slices.Contains(perms, p) {
		return perms
	}

	return append(perms, p)
}

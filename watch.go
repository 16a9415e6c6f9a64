package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay 合并编辑器保存时连续产生的写事件。
const settleDelay = 150 * time.Millisecond

// watchedFiles 返回需要监听的文件：输入、配置以及作为文件传入的绑定数据。
func (j *job) watchedFiles() []string {
	files := []string{j.flags.In}
	if j.flags.Config != "" {
		files = append(files, j.flags.Config)
	}
	if d := j.flags.Data; d != "" && d[0] != '{' {
		files = append(files, d)
	}
	for i, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			files[i] = abs
		}
	}
	return files
}

// watch 监听文件所在目录，文件变化时重新生成，直到 ctx 结束。
// 单次失败只记录日志，不会退出循环。
func (j *job) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range j.watchedFiles() {
		targets[f] = true
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		// 监听目录而不是文件，编辑器的原子替换不会让监听失效
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("监听目录 %s 失败: %w", dir, err)
		}
		dirs[dir] = true
	}
	j.logger.Info("watching for changes", "files", len(targets))

	timer := time.NewTimer(settleDelay)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !targets[name] {
				continue
			}
			j.logger.Debug("file changed", "path", name)
			timer.Reset(settleDelay)
		case <-timer.C:
			if err := j.run(); err != nil {
				j.logger.Error("生成失败", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			j.logger.Warn("file watcher error", "err", err)
		}
	}
}
